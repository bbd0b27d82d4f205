package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crusher-sewa/materials-api/internal/api/metrics"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

// MaterialHandler handles the materials catalog endpoints. Create and update
// accept multipart forms (with an optional "image" file); update also accepts
// plain JSON for image-less partial updates.
type MaterialHandler struct {
	service ports.MaterialService
}

func NewMaterialHandler(service ports.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

// List returns all materials, newest first.
//
// @Summary      List materials
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listMaterialsResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c echo.Context) error {
	materials, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]materialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialResponse(m))
	}
	return c.JSON(http.StatusOK, listMaterialsResponse{Materials: out})
}

// Create adds a material from a multipart form.
//
// @Summary      Create a material
// @Tags         materials
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name            formData  string  true   "Unique material name"
// @Param        ratePerCuMetre  formData  string  true   "Non-negative rate"
// @Param        unit            formData  string  false  "Unit label"
// @Param        stock           formData  string  false  "Non-negative stock"
// @Param        image           formData  file    false  "Material image"
// @Success      201  {object}  materialMessageResponse
// @Failure      400  {object}  messageResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c echo.Context) error {
	in := ports.CreateMaterialInput{
		Name:           c.FormValue("name"),
		RatePerCuMetre: c.FormValue("ratePerCuMetre"),
		Unit:           c.FormValue("unit"),
		Stock:          c.FormValue("stock"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		in.Image = &ports.ImageUpload{Filename: file.Filename, Content: src}
	}

	material, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.MaterialsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, materialMessageResponse{
		Material: toMaterialResponse(material),
		Message:  "Material created successfully",
	})
}

// Update applies a partial update, JSON or multipart.
//
// @Summary      Update a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Material id"
// @Success      200  {object}  materialMessageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/materials/{id} [patch]
func (h *MaterialHandler) Update(c echo.Context) error {
	in, err := bindMaterialUpdate(c)
	if err != nil {
		return err
	}

	material, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.MaterialsUpdatedTotal.Inc()

	return c.JSON(http.StatusOK, materialMessageResponse{
		Material: toMaterialResponse(material),
		Message:  "Material updated successfully",
	})
}

// Delete removes a material and its stored image.
//
// @Summary      Delete a material
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Material id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.MaterialsDeletedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Material deleted successfully"})
}

// bindMaterialUpdate builds the optional-field update from either a multipart
// form (field present = supplied) or a JSON body (key present = supplied).
func bindMaterialUpdate(c echo.Context) (ports.UpdateMaterialInput, error) {
	var in ports.UpdateMaterialInput

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}

		in.Name = formField(form, "name")
		in.RatePerCuMetre = formField(form, "ratePerCuMetre")
		in.Unit = formField(form, "unit")
		in.Stock = formField(form, "stock")

		if files := form.File["image"]; len(files) > 0 {
			src, err := files[0].Open()
			if err != nil {
				return in, err
			}
			// Closed when the request completes; echo tears down the form.
			in.Image = &ports.ImageUpload{Filename: files[0].Filename, Content: src}
		}
		return in, nil
	}

	var req updateMaterialRequest
	if err := c.Bind(&req); err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	in.Name = req.Name
	in.Unit = req.Unit
	if req.RatePerCuMetre != nil {
		s := string(*req.RatePerCuMetre)
		in.RatePerCuMetre = &s
	}
	if req.Stock != nil {
		s := string(*req.Stock)
		in.Stock = &s
	}
	return in, nil
}

func formField(form *multipart.Form, key string) *string {
	if vs, ok := form.Value[key]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}
