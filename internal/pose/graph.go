package pose

import "fmt"

// Joint describes one node of a pose graph topology.
// Parent is the index of the parent joint, or -1 for roots.
type Joint struct {
	Name   string
	Parent int
}

// Topology is the immutable joint hierarchy a clip is authored against.
// Joints are stored in hierarchical order: a joint's parent always has a
// lower index (validated by NewTopology).
type Topology struct {
	Joints []Joint

	index map[string]int
}

// NewTopology builds a Topology from a joint list and validates it.
// Returns an error on duplicate names or on a parent index that does not
// precede its child.
func NewTopology(joints []Joint) (*Topology, error) {
	t := &Topology{
		Joints: joints,
		index:  make(map[string]int, len(joints)),
	}
	for i, j := range joints {
		if j.Name == "" {
			return nil, fmt.Errorf("joint %d has empty name", i)
		}
		if _, dup := t.index[j.Name]; dup {
			return nil, fmt.Errorf("duplicate joint name %q", j.Name)
		}
		if j.Parent >= i {
			return nil, fmt.Errorf("joint %q: parent index %d does not precede child %d", j.Name, j.Parent, i)
		}
		if j.Parent < -1 {
			return nil, fmt.Errorf("joint %q: invalid parent index %d", j.Name, j.Parent)
		}
		t.index[j.Name] = i
	}
	return t, nil
}

// JointIndex returns the index of the named joint, or -1 if absent.
func (t *Topology) JointIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// NumJoints returns the joint count.
func (t *Topology) NumJoints() int {
	return len(t.Joints)
}

// Graph is one pose instance over a Topology: a local transform per joint
// plus the derived model-space transforms. Multiple Graph instances may
// share one Topology (the engine allocates several per backend).
type Graph struct {
	topology *Topology

	// Local holds per-joint transforms relative to the parent joint.
	Local []Transform

	// Model holds the derived model-space transforms, valid after the
	// last UpdateModel call.
	Model []Transform
}

// NewGraph allocates a pose instance over the given topology with every
// joint at identity.
func NewGraph(topology *Topology) *Graph {
	g := &Graph{
		topology: topology,
		Local:    make([]Transform, topology.NumJoints()),
		Model:    make([]Transform, topology.NumJoints()),
	}
	for i := range g.Local {
		g.Local[i] = Identity()
		g.Model[i] = Identity()
	}
	return g
}

// Topology returns the joint hierarchy this graph was allocated against.
func (g *Graph) Topology() *Topology {
	return g.topology
}

// CopyLocalFrom copies the local pose of src into g. Both graphs must
// share a topology of the same joint count.
func (g *Graph) CopyLocalFrom(src *Graph) {
	copy(g.Local, src.Local)
}

// BlendLocalFrom writes the per-joint interpolation of a and b at weight
// w into g's local pose (w=0 yields a, w=1 yields b).
func (g *Graph) BlendLocalFrom(a, b *Graph, w float64) {
	for i := range g.Local {
		g.Local[i] = BlendTransform(a.Local[i], b.Local[i], w)
	}
}

// UpdateModel propagates local transforms down the hierarchy into
// model-space transforms. Scale is composed component-wise; shear from
// non-uniformly scaled parents is not represented.
func (g *Graph) UpdateModel() {
	for i, j := range g.topology.Joints {
		l := g.Local[i]
		if j.Parent < 0 {
			g.Model[i] = l
			continue
		}
		p := g.Model[j.Parent]
		scaled := [3]float64{
			l.Translation[0] * p.Scale[0],
			l.Translation[1] * p.Scale[1],
			l.Translation[2] * p.Scale[2],
		}
		rotated := RotateVec3(p.Rotation, scaled)
		g.Model[i] = Transform{
			Translation: [3]float64{
				p.Translation[0] + rotated[0],
				p.Translation[1] + rotated[1],
				p.Translation[2] + rotated[2],
			},
			Rotation: NormalizeQuat(MulQuat(p.Rotation, l.Rotation)),
			Scale: [3]float64{
				p.Scale[0] * l.Scale[0],
				p.Scale[1] * l.Scale[1],
				p.Scale[2] * l.Scale[2],
			},
		}
	}
}

// Reset returns every joint to identity in both local and model space.
func (g *Graph) Reset() {
	for i := range g.Local {
		g.Local[i] = Identity()
		g.Model[i] = Identity()
	}
}
