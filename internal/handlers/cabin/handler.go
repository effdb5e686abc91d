package cabin

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"lodge/infras/otel"
	"lodge/internal/domains/cabin/model"
	"lodge/internal/domains/cabin/model/dto"
	"lodge/internal/domains/cabin/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/validator"
	"lodge/transport/http/middleware"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageNotANumber = "Please enter a number"
	messageNotFound   = "cabin not found"

	formName         = "name"
	formMaxCapacity  = "maxCapacity"
	formRegularPrice = "regularPrice"
	formDiscount     = "discount"
	formDescription  = "description"
)

var sortable = []string{model.FieldName, model.FieldRegularPrice, model.FieldMaxCapacity, model.FieldDiscount, constant.DefaultValueSortBy}

type Handler struct {
	service service.Cabin
	otel    otel.Otel
}

func New(service service.Cabin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	validID := middleware.UUIDParam(constant.RequestParamID, messageNotFound)

	router.Route("/cabins", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCabin)
		routerGroup.Get("/", handler.GetCabins)
		routerGroup.With(validID).Get("/{id}", handler.GetCabinByID)
		routerGroup.With(validID).Patch("/{id}", handler.UpdateCabin)
		routerGroup.With(validID).Delete("/{id}", handler.DeleteCabin)
	})
}

// form reads the multipart cabin form. Numeric fields that do not parse are reported per field.
type form struct {
	request *http.Request
	fields  map[string]string
}

func (f *form) text(name string) string {
	return strings.TrimSpace(f.request.FormValue(name))
}

func (f *form) int(name string) *int {
	raw := f.text(name)
	if raw == constant.Empty {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		f.fields[name] = messageNotANumber

		return nil
	}

	return &value
}

func (f *form) float(name string) *float64 {
	raw := f.text(name)
	if raw == constant.Empty {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.fields[name] = messageNotANumber

		return nil
	}

	return &value
}

// image returns the uploaded image, or nils when none was sent.
func (f *form) image() (multipart.File, *multipart.FileHeader, error) {
	file, header, err := f.request.FormFile(constant.FormFile)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	return file, header, nil
}

func (f *form) err() error {
	if len(f.fields) == 0 {
		return nil
	}

	return failure.Unprocessable("Cabin form is not valid", f.fields) //nolint:wrapcheck
}

func parseForm(request *http.Request) (*form, error) {
	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	return &form{request: request, fields: map[string]string{}}, nil
}

func valueOr[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}

	return *value
}

// CreateCabin handles the creation of a new cabin.
// @Summary Create a new cabin
// @Description Create a cabin from a multipart form. The image is optional.
// @Tags Cabin
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Cabin name"
// @Param maxCapacity formData int true "Maximum capacity"
// @Param regularPrice formData number true "Regular price per night"
// @Param discount formData number false "Discount"
// @Param description formData string true "Description"
// @Param image formData file false "Cabin photo"
// @Success 201 {object} response.Data[dto.CabinResponse]
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins [post]
// @Security BearerAuth
func (handler *Handler) CreateCabin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCabin")
	defer scope.End()

	form, err := parseForm(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse cabin form")

		response.WithError(writer, err)

		return
	}

	file, header, err := form.image()
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.CreateCabinRequest{
		Name:         form.text(formName),
		MaxCapacity:  valueOr(form.int(formMaxCapacity)),
		RegularPrice: valueOr(form.float(formRegularPrice)),
		Discount:     valueOr(form.float(formDiscount)),
		Description:  form.text(formDescription),
		Image:        header,
		ImageFile:    file,
	}

	if err = form.err(); err != nil {
		response.WithError(writer, err)

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cabin")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Cabin created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCabins lists cabins.
// @Summary Get all cabins
// @Description List cabins, optionally only those with or without a discount.
// @Tags Cabin
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "name, regular_price, max_capacity, discount or created_at"
// @Param sort_dir query string false "ASC or DESC"
// @Param discount query string false "with or without"
// @Success 200 {object} response.Data[dto.GetCabinsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/cabins [get]
// @Security BearerAuth
func (handler *Handler) GetCabins(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCabins")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.Sortable(model.TableName, sortable...)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	switch request.URL.Query().Get(constant.RequestParamDiscount) {
	case constant.DiscountFilterWith:
		filterGroup.Append(gDto.Filter{Field: model.FieldDiscount, Operator: gDto.FilterOperatorGreater, Value: 0, Table: model.TableName})
	case constant.DiscountFilterWithout:
		filterGroup.Append(gDto.Filter{Field: model.FieldDiscount, Operator: gDto.FilterOperatorEq, Value: 0, Table: model.TableName})
	}

	cabins, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cabins")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, cabins)
}

// GetCabinByID returns one cabin.
// @Summary Get a cabin
// @Tags Cabin
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} response.Data[dto.CabinResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCabinByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCabinByID")
	defer scope.End()

	cabin, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cabin")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, cabin)
}

// UpdateCabin applies a partial update. Sending an image replaces the stored one.
// @Summary Update a cabin
// @Tags Cabin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Cabin ID"
// @Param name formData string false "Cabin name"
// @Param maxCapacity formData int false "Maximum capacity"
// @Param regularPrice formData number false "Regular price per night"
// @Param discount formData number false "Discount"
// @Param description formData string false "Description"
// @Param image formData file false "Cabin photo"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCabin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCabin")
	defer scope.End()

	form, err := parseForm(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	file, header, err := form.image()
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if file != nil {
		defer file.Close()
	}

	req := dto.UpdateCabinRequest{
		Name:         form.text(formName),
		MaxCapacity:  form.int(formMaxCapacity),
		RegularPrice: form.float(formRegularPrice),
		Discount:     form.float(formDiscount),
		Description:  form.text(formDescription),
		Image:        header,
		ImageFile:    file,
	}

	if err = form.err(); err != nil {
		response.WithError(writer, err)

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cabin")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Cabin successfully edited")
}

// DeleteCabin removes a cabin and its image.
// @Summary Delete a cabin
// @Tags Cabin
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCabin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCabin")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete cabin")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cabin deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Cabin successfully deleted")
}
