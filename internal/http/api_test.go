package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usuarios-admin/internal/repository/sqlite"
	"usuarios-admin/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "usuarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUsuarioRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	NewHandler(service.NewUsuarioService(repo), logger).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func decodeUsuario(t *testing.T, data any) UsuarioResponse {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var usuario UsuarioResponse
	require.NoError(t, json.Unmarshal(raw, &usuario))
	return usuario
}

func TestCreateUsuario(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Usuario creado correctamente", env.Message)

	usuario := decodeUsuario(t, env.Data)
	assert.Equal(t, int64(1), usuario.ID)
	assert.Equal(t, "Ana", usuario.Nombre)
	assert.Equal(t, "Lopez", usuario.Apellido)
	assert.Equal(t, "1990-05-01", usuario.Fechanac)
	assert.True(t, usuario.ActiveUser)
}

func TestCreateUsuarioTrims(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "  Ana  ",
		"apellido": " Lopez ",
		"fechanac": "1990-05-01",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	usuario := decodeUsuario(t, env.Data)
	assert.Equal(t, "Ana", usuario.Nombre)
	assert.Equal(t, "Lopez", usuario.Apellido)
}

func TestCreateUsuarioMissingFields(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestCreateUsuarioInvalidDate(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "no-es-fecha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUsuarioInvalidID(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID de usuario inválido", env.Error)
}

func TestGetUsuarioNotFound(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuario no encontrado", env.Error)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	_, created := doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":      " Ana ",
		"apellido":    "Lopez",
		"fechanac":    "1990-05-01",
		"active_user": false,
	})
	creado := decodeUsuario(t, created.Data)

	w, env := doRequest(t, router, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, creado, decodeUsuario(t, env.Data))
}

func TestListUsuarios(t *testing.T) {
	router := newTestRouter(t)

	for _, nombre := range []string{"Ana", "Luis"} {
		w, _ := doRequest(t, router, http.MethodPost, "/users", gin.H{
			"nombre":   nombre,
			"apellido": "Lopez",
			"fechanac": "1990-05-01",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doRequest(t, router, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Usuarios obtenidos correctamente", env.Message)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var usuarios []UsuarioResponse
	require.NoError(t, json.Unmarshal(raw, &usuarios))

	require.Len(t, usuarios, 2)
	assert.Equal(t, int64(2), usuarios[0].ID)
	assert.Equal(t, "Luis", usuarios[0].Nombre)
	assert.Equal(t, int64(1), usuarios[1].ID)
}

func TestUpdateUsuario(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})

	w, env := doRequest(t, router, http.MethodPut, "/users/1", gin.H{
		"nombre":      "Ana María",
		"apellido":    "Lopez",
		"fechanac":    "1991-06-02",
		"active_user": false,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Usuario actualizado correctamente", env.Message)

	usuario := decodeUsuario(t, env.Data)
	assert.Equal(t, "Ana María", usuario.Nombre)
	assert.Equal(t, "1991-06-02", usuario.Fechanac)
	assert.False(t, usuario.ActiveUser)
}

func TestUpdateUsuarioKeepsActiveWhenOmitted(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":      "Ana",
		"apellido":    "Lopez",
		"fechanac":    "1990-05-01",
		"active_user": false,
	})

	_, env := doRequest(t, router, http.MethodPut, "/users/1", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})

	usuario := decodeUsuario(t, env.Data)
	assert.False(t, usuario.ActiveUser)
}

func TestUpdateUsuarioNotFound(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPut, "/users/999", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUsuarioInvalidID(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPut, "/users/abc", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUsuario(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/users", gin.H{
		"nombre":   "Ana",
		"apellido": "Lopez",
		"fechanac": "1990-05-01",
	})

	w, env := doRequest(t, router, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Usuario eliminado correctamente", env.Message)
	assert.Nil(t, env.Data)

	// deleting again reports not found
	w, _ = doRequest(t, router, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, router, http.MethodDelete, "/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
