package render

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PreflightInfo summarizes a validation pass over a PDF before text
// extraction is attempted.
type PreflightInfo struct {
	PageCount int
	HasImages bool
}

// Preflight validates the PDF and reports page count and whether the
// document carries image XObjects. Image-only documents typically
// yield an empty outline; callers use this to log the likely reason.
func Preflight(path string) (PreflightInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return PreflightInfo{}, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return PreflightInfo{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	info := PreflightInfo{PageCount: ctx.PageCount}
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				info.HasImages = true
				break
			}
		}
	}
	return info, nil
}
