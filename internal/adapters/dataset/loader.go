// Package dataset loads the objects features are calculated on.
package dataset

import (
	"os"
	"strconv"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.InputLoader using YAML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new dataset loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{logger: log}
}

// Load reads the dataset file at path. Objects without a name are named after
// their position. A collection referring to a top-level object holds that same
// object, so calculations on it can be reused across collections.
func (l *Loader) Load(path string) (*domain.Dataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read dataset file"), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse dataset file"), "path", path)
	}

	ds := &domain.Dataset{
		Objects:     convertObjects(file.Objects, "object"),
		Collections: make([]*domain.ObjectCollection, len(file.Collections)),
	}
	byName := make(map[string]*domain.ObjectMask, len(ds.Objects))
	for _, o := range ds.Objects {
		if _, exists := byName[o.Name]; !exists {
			byName[o.Name] = o
		}
	}

	for i, dto := range file.Collections {
		name := dto.Name
		if name == "" {
			name = "collection-" + strconv.Itoa(i)
		}
		objects := make([]*domain.ObjectMask, 0, len(dto.Refs)+len(dto.Objects))
		for _, ref := range dto.Refs {
			o, ok := byName[ref]
			if !ok {
				err := zerr.With(zerr.Wrap(domain.ErrObjectNotFound, "failed to resolve collection object"), "collection", name)
				return nil, zerr.With(zerr.With(err, "object", ref), "path", path)
			}
			objects = append(objects, o)
		}
		ds.Collections[i] = &domain.ObjectCollection{
			Name:    name,
			Objects: append(objects, convertObjects(dto.Objects, name+"/object")...),
		}
	}

	if len(ds.Objects) == 0 && len(ds.Collections) == 0 && l.logger != nil {
		l.logger.Warn("dataset " + path + " is empty")
	}
	return ds, nil
}

func convertObjects(dtos []ObjectDTO, prefix string) []*domain.ObjectMask {
	objects := make([]*domain.ObjectMask, len(dtos))
	for i, dto := range dtos {
		name := dto.Name
		if name == "" {
			name = prefix + "-" + strconv.Itoa(i)
		}
		voxels := make([]domain.Voxel, len(dto.Voxels))
		for j, v := range dto.Voxels {
			voxels[j] = domain.Voxel{X: v.X, Y: v.Y, Z: v.Z, Intensity: v.Intensity}
		}
		objects[i] = &domain.ObjectMask{Name: name, Voxels: voxels}
	}
	return objects
}
