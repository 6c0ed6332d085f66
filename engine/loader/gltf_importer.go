package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
	"github.com/qmuntal/gltf"
)

// gltfImporter orchestrates a full glTF/GLB import: decode the document, extract the
// skeleton and skin, extract the animation clips and bundle them into a rig.
type gltfImporter struct{}

// Import opens a glTF or GLB file, resolving external buffers relative to its directory.
//
// Parameters:
//   - path: the file path to the glTF or GLB file
//   - settings: skin selection and rig options
//
// Returns:
//   - *rig.Rig: the imported rig
//   - error: error if decoding or extraction fails
func (imp *gltfImporter) Import(path string, settings importSettings) (*rig.Rig, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imp.importDocument(doc, name, settings)
}

// ImportReader decodes a glTF document from a reader. External buffers cannot be resolved,
// so the document must embed its buffers (GLB or data URIs).
//
// Parameters:
//   - name: the fallback rig name
//   - r: the reader providing glTF/GLB data
//   - settings: skin selection and rig options
//
// Returns:
//   - *rig.Rig: the imported rig
//   - error: error if decoding or extraction fails
func (imp *gltfImporter) ImportReader(name string, r io.Reader, settings importSettings) (*rig.Rig, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importDocument(doc, name, settings)
}

// importDocument builds a rig from a decoded document.
func (imp *gltfImporter) importDocument(doc *gltf.Document, fallbackName string, settings importSettings) (*rig.Rig, error) {
	extracted, err := gltfExtractSkeleton(doc, settings.skinIndex)
	if err != nil {
		return nil, fmt.Errorf("skeleton extraction failed: %w", err)
	}

	clips, err := gltfExtractAnimations(doc, extracted.jointNames)
	if err != nil {
		return nil, fmt.Errorf("animation extraction failed: %w", err)
	}

	options := []rig.RigBuilderOption{rig.WithAnimations(clips...)}
	if extracted.skin != nil {
		options = append(options, rig.WithSkin(extracted.skin))
	}
	options = append(options, settings.rigOptions...)

	return rig.NewRig(gltfExtractRigName(doc, fallbackName), extracted.skeleton, options...), nil
}

// gltfExtractRigName prefers the default scene's name and falls back to the given name.
func gltfExtractRigName(doc *gltf.Document, fallback string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	if fallback != "" {
		return fallback
	}
	return "unnamed_rig"
}
