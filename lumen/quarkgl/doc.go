// Package quarkgl provides a minimal, predictable software 3D renderer for lumen scenes.
//
// QuarkGL draws three kinds of scene nodes: triangle meshes (flat, wireframe or
// textured), point clouds, and line batches whose segments are supplied by the caller
// every frame. It is not a game engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Root → Node transform → Projection → Clipping → Rasterization → Target.
//
// The renderer draws into a caller-provided Target. Targets store alpha-premultiplied
// RGBA so that finished frames can be composited over each other. The render hot path
// does not allocate once the depth buffer has been sized for a target.
package quarkgl
