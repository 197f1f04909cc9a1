package orders

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(env *testEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(env.service).RegisterRoutes(r.Group("/"))
	return r
}

func (e *testEnv) formValues() url.Values {
	v := url.Values{}
	v.Set("number", "З-101")
	v.Set("manager", fmt.Sprint(e.managerID))
	v.Set("executors", fmt.Sprint(e.workerID))
	v.Set("source", "site")
	v.Set("contract_num", "Д-101")
	v.Set("create_date", "2026-03-01")
	v.Set("completion_date", "2026-03-15")
	v.Set("total_value", "150000")
	v.Set("payment_type", "cash")
	v.Set("full_name", "Сидорова Анна Павловна")
	v.Set("contact_number", "+79990001122")
	v.Set("items_qty", "1")
	v.Set("short_descr", "Диван угловой")
	v.Set("furniture_type1", "soft")
	v.Set("work_types", "reupholster")
	v.Set("material_name", "Велюр синий")
	return v
}

func postForm(r *gin.Engine, path string, form url.Values, ajax bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ajax {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAddOrderRedirects(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	w := postForm(r, "/add_order/", env.formValues(), false)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/orders/", w.Header().Get("Location"))
}

func TestAddOrderAjax(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	w := postForm(r, "/add_order/", env.formValues(), true)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID       uint   `json:"id"`
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotZero(t, body.Data.ID)
	assert.Equal(t, "/orders/", body.Data.Redirect)
}

func TestAddOrderMissingRequiredField(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	form := env.formValues()
	form.Del("contract_num")
	w := postForm(r, "/add_order/", form, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddOrderUnknownManager(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	form := env.formValues()
	form.Set("manager", "9999")
	w := postForm(r, "/add_order/", form, true)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Сотрудник не найден")
}

func TestListAjaxFlatPayload(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	require.Equal(t, http.StatusFound, postForm(r, "/add_order/", env.formValues(), false).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(1), body.TotalCount)
	assert.Equal(t, "З-101", body.Data[0].Number)
	assert.Equal(t, "01.03.2026", body.Data[0].CreateDate)
}

func TestListPagePayloadIsWrapped(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "success")
	assert.Contains(t, body, "data")
}

func TestDeleteOrderContract(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	w := postForm(r, "/add_order/", env.formValues(), true)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = postForm(r, fmt.Sprintf("/delete-order/%d/", created.Data.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	// a second delete reports the legacy flat error at HTTP 200
	w = postForm(r, fmt.Sprintf("/delete-order/%d/", created.Data.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "Заказ не найден"}`, w.Body.String())

	w = postForm(r, "/delete-order/abc/", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "Неверный запрос"}`, w.Body.String())
}

func TestExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	r := newRouter(env)

	require.Equal(t, http.StatusFound, postForm(r, "/add_order/", env.formValues(), false).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/export/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}
