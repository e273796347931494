package domain

// Voxel is a single labelled point of an object with its measured intensity.
type Voxel struct {
	X         int
	Y         int
	Z         int
	Intensity float64
}

// ObjectMask is a segmented object: the voxels belonging to it.
type ObjectMask struct {
	Name   string
	Voxels []Voxel
}

// InputType implements Input.
func (o *ObjectMask) InputType() InputType {
	return TypeObject
}

// Len returns the number of voxels.
func (o *ObjectMask) Len() int {
	return len(o.Voxels)
}

// ObjectCollection groups objects that are measured together, e.g. all cells of one image.
type ObjectCollection struct {
	Name    string
	Objects []*ObjectMask
}

// InputType implements Input.
func (c *ObjectCollection) InputType() InputType {
	return TypeCollection
}

// Len returns the number of objects.
func (c *ObjectCollection) Len() int {
	return len(c.Objects)
}

// Dataset is everything loaded from one data file.
type Dataset struct {
	Objects     []*ObjectMask
	Collections []*ObjectCollection
}

// Rows returns the inputs of the given type in file order.
// Objects of every collection are included after the standalone objects when
// rows of TypeObject are requested. An object shared by several collections is
// listed once.
func (d *Dataset) Rows(t InputType) []Input {
	var rows []Input
	switch t {
	case TypeObject:
		seen := make(map[*ObjectMask]struct{})
		add := func(o *ObjectMask) {
			if _, ok := seen[o]; !ok {
				seen[o] = struct{}{}
				rows = append(rows, o)
			}
		}
		for _, o := range d.Objects {
			add(o)
		}
		for _, c := range d.Collections {
			for _, o := range c.Objects {
				add(o)
			}
		}
	case TypeCollection:
		for _, c := range d.Collections {
			rows = append(rows, c)
		}
	}
	return rows
}
