package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
)

// importSettings carries the per-loader options a backend needs to build a rig.
type importSettings struct {
	skinIndex  int
	rigOptions []rig.RigBuilderOption
}

// loaderBackend defines the generic interface for loading rigs from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full rig import from the given file path.
	// This extracts the skeleton, the skin and every animation clip.
	//
	// Parameters:
	//   - path: the file path to load
	//   - settings: skin selection and rig options
	//
	// Returns:
	//   - *rig.Rig: the imported rig
	//   - error: error if loading fails
	Load(path string, settings importSettings) (*rig.Rig, error)

	// LoadReader imports a rig from a reader stream. Glb and JSON streams are both accepted.
	//
	// Parameters:
	//   - name: the name given to the rig when the document has no scene name
	//   - r: the reader providing model data
	//   - settings: skin selection and rig options
	//
	// Returns:
	//   - *rig.Rig: the imported rig
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, settings importSettings) (*rig.Rig, error)
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// It delegates to the gltfImporter for decoding and extraction.
type gltfLoaderBackend struct {
	importer *gltfImporter
}

var _ loaderBackend = &gltfLoaderBackend{}

// newGLTFLoaderBackend creates a new glTF loader backend.
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{importer: &gltfImporter{}}
}

func (b *gltfLoaderBackend) Load(path string, settings importSettings) (*rig.Rig, error) {
	return b.importer.Import(path, settings)
}

func (b *gltfLoaderBackend) LoadReader(name string, r io.Reader, settings importSettings) (*rig.Rig, error) {
	return b.importer.ImportReader(name, r, settings)
}
