package cabin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "lodge/infras/otel/mocks"
	"lodge/internal/domains/cabin/mocks"
	"lodge/internal/domains/cabin/model/dto"
	"lodge/internal/handlers/cabin"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

const cabinID = "0b8e6f0e-8c1a-4d2b-9a57-3f1f0c2d9e11"

type fixture struct {
	service *mocks.MockCabinService
	router  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockCabinService(ctrl)

	handler := cabin.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return &fixture{service: service, router: router}
}

type image struct {
	name        string
	contentType string
	data        []byte
}

func form(t *testing.T, values map[string]string, img *image) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range values {
		require.NoError(t, writer.WriteField(key, value))
	}

	if img != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.name))
		header.Set("Content-Type", img.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write(img.data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func (f *fixture) send(t *testing.T, method, target string, values map[string]string, img *image) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := form(t, values, img)

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	return recorder
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	return recorder
}

type envelope struct {
	Data   json.RawMessage   `json:"data"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var res envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return res
}

func cabinForm() map[string]string {
	return map[string]string{
		"name":         "001",
		"maxCapacity":  "4",
		"regularPrice": "250",
		"discount":     "25",
		"description":  "Small cabin by the lake",
	}
}

func TestCreateCabin(t *testing.T) {
	t.Run("without image", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateCabinRequest) (dto.CabinResponse, error) {
				assert.Equal(t, "001", req.Name)
				assert.Equal(t, 4, req.MaxCapacity)
				assert.InDelta(t, 250, req.RegularPrice, 0.001)
				assert.InDelta(t, 25, req.Discount, 0.001)
				assert.Nil(t, req.Image)
				assert.Nil(t, req.ImageFile)

				return dto.CabinResponse{ID: "c1", Name: req.Name}, nil
			})

		recorder := f.send(t, http.MethodPost, "/cabins", cabinForm(), nil)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var res dto.CabinResponse
		require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &res))
		assert.Equal(t, "c1", res.ID)
	})

	t.Run("with image", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateCabinRequest) (dto.CabinResponse, error) {
				require.NotNil(t, req.Image)
				assert.Equal(t, "cabin-001.png", req.Image.Filename)
				assert.NotNil(t, req.ImageFile)

				return dto.CabinResponse{ID: "c1"}, nil
			})

		recorder := f.send(t, http.MethodPost, "/cabins", cabinForm(), &image{name: "cabin-001.png", contentType: "image/png", data: []byte("\x89PNG")})

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("image type is checked", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.send(t, http.MethodPost, "/cabins", cabinForm(), &image{name: "cabin.pdf", contentType: "application/pdf", data: []byte("%PDF")})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, decode(t, recorder).Fields, "image")
	})

	t.Run("numbers that do not parse", func(t *testing.T) {
		f := newFixture(t)

		values := cabinForm()
		values["maxCapacity"] = "four"
		values["regularPrice"] = "a lot"

		recorder := f.send(t, http.MethodPost, "/cabins", values, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Equal(t, map[string]string{
			"maxCapacity":  "Please enter a number",
			"regularPrice": "Please enter a number",
		}, decode(t, recorder).Fields)
	})

	t.Run("discount above the regular price", func(t *testing.T) {
		f := newFixture(t)

		values := cabinForm()
		values["discount"] = "300"

		recorder := f.send(t, http.MethodPost, "/cabins", values, nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Discount should be less than regular price", decode(t, recorder).Fields["discount"])
	})

	t.Run("body is not a form", func(t *testing.T) {
		f := newFixture(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/cabins", bytes.NewBufferString(`{"name":"001"}`))
		request.Header.Set("Content-Type", "application/json")

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateCabin(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Update(gomock.Any(), gomock.Any(), cabinID).
		DoAndReturn(func(_ context.Context, req dto.UpdateCabinRequest, _ string) error {
			require.NotNil(t, req.RegularPrice)
			assert.InDelta(t, 300, *req.RegularPrice, 0.001)
			assert.Nil(t, req.MaxCapacity)
			assert.Nil(t, req.Discount)
			assert.Empty(t, req.Name)

			return nil
		})

	recorder := f.send(t, http.MethodPatch, "/cabins/"+cabinID, map[string]string{"regularPrice": "300"}, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetCabins(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantWhere string
		wantArg   any
	}{
		{name: "all", query: ""},
		{name: "with discount", query: "?discount=with", wantWhere: "cabins.discount > :discount", wantArg: 0},
		{name: "without discount", query: "?discount=without", wantWhere: "cabins.discount = :discount", wantArg: 0},
		{name: "unknown value is ignored", query: "?discount=maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCabinsResponse, error) {
					where, args := filter.GetWhereClause()

					if tt.wantWhere == "" {
						assert.Empty(t, where)

						return dto.GetCabinsResponse{}, nil
					}

					assert.Equal(t, "("+tt.wantWhere+")", where)
					assert.Equal(t, tt.wantArg, args["discount"])

					return dto.GetCabinsResponse{}, nil
				})

			recorder := f.get("/cabins" + tt.query)

			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

func TestGetCabinByID(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Get(gomock.Any(), cabinID).Return(dto.CabinResponse{}, failure.NotFound("cabin"))

	recorder := f.get("/cabins/" + cabinID)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteCabin(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Delete(gomock.Any(), cabinID).Return(failure.Conflict("Cabin has bookings"))

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/cabins/"+cabinID, nil))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "Cabin has bookings", decode(t, recorder).Error)
}

func TestGetCabinByID_MalformedID(t *testing.T) {
	f := newFixture(t)

	recorder := f.get("/cabins/abc")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "cabin not found", decode(t, recorder).Error)
}
