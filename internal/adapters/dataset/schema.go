package dataset

// File represents the structure of a dataset file.
type File struct {
	Objects     []ObjectDTO     `yaml:"objects"`
	Collections []CollectionDTO `yaml:"collections"`
}

// ObjectDTO represents one object mask.
type ObjectDTO struct {
	Name   string     `yaml:"name"`
	Voxels []VoxelDTO `yaml:"voxels"`
}

// VoxelDTO represents one voxel of an object.
type VoxelDTO struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Z         int     `yaml:"z"`
	Intensity float64 `yaml:"intensity"`
}

// CollectionDTO represents a named group of objects. Refs name top-level
// objects shared with other collections; they precede the inline objects.
type CollectionDTO struct {
	Name    string      `yaml:"name"`
	Refs    []string    `yaml:"refs"`
	Objects []ObjectDTO `yaml:"objects"`
}
