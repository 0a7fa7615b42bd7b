package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
	Blend     BlendMode

	// Wireframe draws mesh edges regardless of the renderer mode.
	Wireframe bool
	// Texture, when set, maps onto mesh vertex UVs.
	Texture *Texture
	// NoDepth skips the depth test (drawn on top).
	NoDepth bool
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	// Perspective.
	FOVYRad Scalar

	// Orthographic (half-height).
	OrthoSize Scalar

	Near Scalar
	Far  Scalar

	// Aspect overrides the target aspect when non-zero.
	Aspect Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	if c.Aspect != 0 {
		aspect = c.Aspect
	}
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		top := size
		bottom := -size
		right := size * aspect
		left := -right
		return Mat4Ortho(left, right, bottom, top, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = 1
		}
		return Mat4Perspective(fov, aspect, c.Near, c.Far)
	}
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
	U, V   Scalar
}

// Mesh is triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16 // triangle list
}

// PointCloud is a set of points drawn as screen-aligned squares.
type PointCloud struct {
	Positions []Vec3
	// Colors is optional; when shorter than Positions the material color is used.
	Colors []Color
	// Sizes is optional; when shorter than Positions Size is used.
	Sizes []Scalar
	Size  Scalar
	// Attenuate scales sizes with distance (world units). Otherwise sizes are device pixels.
	Attenuate bool
}

// LineBatch supplies line segments each frame. Segments reported as not ok are skipped.
type LineBatch interface {
	Len() int
	Segment(i int) (a, b Vec3, alpha Scalar, ok bool)
}

// NodeKind identifies what a scene node draws.
type NodeKind uint8

const (
	NodeMesh NodeKind = iota
	NodePoints
	NodeLines
)

// Node is one drawable entry of a scene.
type Node struct {
	Kind    NodeKind
	Enabled bool

	Mesh   Mesh
	Points *PointCloud
	Lines  LineBatch

	Transform Mat4
	Material  Material
	// Order sorts drawing; lower first. Ties keep insertion order.
	Order int
}

// Scene is a fixed-capacity collection of nodes to render.
type Scene struct {
	Camera Camera
	Light  Light
	// Root is applied to every node (whole-scene tilt).
	Root Mat4

	nodes []Node
	alive []bool
	order []int
}

// CreateScene allocates a scene with a fixed node capacity.
func CreateScene(maxNodes int) *Scene {
	if maxNodes < 0 {
		maxNodes = 0
	}
	return &Scene{
		Camera: Camera{
			Type:      CameraPerspective,
			Position:  V3(0, 0, 3),
			Target:    V3(0, 0, 0),
			Up:        V3(0, 1, 0),
			FOVYRad:   1,
			Near:      0.05,
			Far:       100,
			OrthoSize: 1,
		},
		Light: Light{
			Mode: LightOff,
		},
		Root:  Mat4Identity(),
		nodes: make([]Node, maxNodes),
		alive: make([]bool, maxNodes),
		order: make([]int, 0, maxNodes),
	}
}

// Cap returns the node capacity.
func (s *Scene) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.nodes)
}

// Len returns the number of live nodes.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// AddNode adds a node to the scene and returns its id or -1 if full.
func (s *Scene) AddNode(n Node) int {
	if s == nil {
		return -1
	}
	switch n.Kind {
	case NodePoints:
		if n.Points == nil {
			return -1
		}
	case NodeLines:
		if n.Lines == nil {
			return -1
		}
	}
	for i := range s.nodes {
		if s.alive[i] {
			continue
		}
		if n.Transform == (Mat4{}) {
			n.Transform = Mat4Identity()
		}
		if n.Material.Opacity == 0 {
			n.Material.Opacity = 0xFF
		}
		if n.Material.BaseColor == (Color{}) {
			n.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		n.Enabled = true
		s.nodes[i] = n
		s.alive[i] = true
		s.insertOrder(i)
		return i
	}
	return -1
}

// AddMesh adds a mesh node.
func (s *Scene) AddMesh(m Mesh, mat Material) int {
	return s.AddNode(Node{Kind: NodeMesh, Mesh: m, Material: mat})
}

// AddPoints adds a point cloud node.
func (s *Scene) AddPoints(p *PointCloud, mat Material) int {
	return s.AddNode(Node{Kind: NodePoints, Points: p, Material: mat})
}

// AddLines adds a line batch node.
func (s *Scene) AddLines(l LineBatch, mat Material) int {
	return s.AddNode(Node{Kind: NodeLines, Lines: l, Material: mat})
}

// RemoveNode removes a node by id.
func (s *Scene) RemoveNode(id int) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.nodes[id] = Node{}
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetNodeEnabled enables/disables a node by id.
func (s *Scene) SetNodeEnabled(id int, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.nodes[id].Enabled = enabled
}

// UpdateNodeTransform updates a node transform by id.
func (s *Scene) UpdateNodeTransform(id int, m Mat4) {
	if !s.valid(id) {
		return
	}
	s.nodes[id].Transform = m
}

// Node returns a live node by id.
func (s *Scene) Node(id int) (Node, bool) {
	if !s.valid(id) {
		return Node{}, false
	}
	return s.nodes[id], true
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.nodes) && s.alive[id]
}

// insertOrder keeps order sorted by Node.Order, stable on insertion.
func (s *Scene) insertOrder(id int) {
	pos := len(s.order)
	for i, o := range s.order {
		if s.nodes[o].Order > s.nodes[id].Order {
			pos = i
			break
		}
	}
	s.order = append(s.order, 0)
	copy(s.order[pos+1:], s.order[pos:])
	s.order[pos] = id
}

func (s *Scene) eachNode(fn func(n *Node)) {
	for _, id := range s.order {
		if !s.alive[id] {
			continue
		}
		fn(&s.nodes[id])
	}
}
