package hal

// pixelRGB reads one straight-alpha pixel from an RGBA8888 buffer, composited over black.
func pixelRGB(buf []byte, stride, x, y int) (r, g, b uint8) {
	off := y*stride + x*4
	if x < 0 || y < 0 || off < 0 || off+3 >= len(buf) {
		return 0, 0, 0
	}
	// Premultiplied storage: the color channels are already scaled by alpha.
	return buf[off], buf[off+1], buf[off+2]
}

// viewportRatio caps a device pixel ratio the way every host does.
func viewportRatio(dpr float32, maxRatio float32) float32 {
	if dpr <= 0 {
		dpr = 1
	}
	if maxRatio > 0 && dpr > maxRatio {
		return maxRatio
	}
	return dpr
}
