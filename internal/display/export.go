package display

import (
	"image"

	"github.com/disintegration/imaging"

	apperrors "github.com/FocuswithJustin/ppmviewer/core/errors"
	"github.com/FocuswithJustin/ppmviewer/internal/validation"
)

// Export writes img to path in the format named by the file extension.
func Export(img image.Image, path string) error {
	if err := validation.ValidateExportPath(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return apperrors.NewIO("export", path, err)
	}
	return nil
}
