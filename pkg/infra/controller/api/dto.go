// 指示: miu200521358
package api

import (
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

type selectionRequest struct {
	// RegionID が空の場合は選択解除。
	RegionID model.RegionID `json:"regionId"`
}

type variantRequest struct {
	Variant string `json:"variant"`
}

type pointerRequest struct {
	Intersections []minteractor.Intersection `json:"intersections"`
}

type pointerResponse struct {
	Resolved  bool                      `json:"resolved"`
	RegionID  model.RegionID            `json:"regionId"`
	JointName string                    `json:"jointName"`
	State     minteractor.StateSnapshot `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}
