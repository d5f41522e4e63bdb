package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruta_segura/internal/config"
	"ruta_segura/internal/models"
)

func seedPadreConEstudiante(t *testing.T, nombre, codigo string) (models.User, models.Estudiante) {
	t.Helper()
	padre := models.User{Name: nombre, Email: codigo + "@test.local", Role: "padre"}
	require.NoError(t, config.DB.Create(&padre).Error)
	estudiante := models.Estudiante{Nombre: "Hijo de " + nombre, Codigo: codigo, ColegioID: 1, PadreID: padre.ID, Activo: true}
	require.NoError(t, config.DB.Create(&estudiante).Error)
	return padre, estudiante
}

func paradaBody(tipo, subtipo string, activa bool) map[string]interface{} {
	return map[string]interface{}{
		"tipo":      tipo,
		"subtipo":   subtipo,
		"direccion": "Av. Libertad 742",
		"calle":     "Av. Libertad",
		"numero":    "742",
		"latitud":   -33.45,
		"longitud":  -70.66,
		"activa":    activa,
	}
}

func TestParadaLifecycleAsPadre(t *testing.T) {
	r := setupRouter(t)
	padre, estudiante := seedPadreConEstudiante(t, "Teresa", "B-201")
	token := authHeader(t, padre.ID, "padre")
	base := fmt.Sprintf("/padre/estudiantes/%d/paradas", estudiante.ID)

	// Create into the free recogida/principal slot.
	w := doJSON(t, r, http.MethodPost, base, token, paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Parada
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["parada"], &created))
	require.NotZero(t, created.ID)
	assert.True(t, created.Activa)

	// Occupied slot is a conflict, not an overwrite.
	w = doJSON(t, r, http.MethodPost, base, token, paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true))
	assert.Equal(t, http.StatusConflict, w.Code)

	// Edit the existing parada instead.
	edit := paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true)
	edit["direccion"] = "Camino del Cerro 15"
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/padre/paradas/%d", created.ID), token, edit)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Parada
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["parada"], &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Camino del Cerro 15", updated.Direccion)

	// The activa parada round-trips through the read endpoint.
	w = doJSON(t, r, http.MethodGet, base+"/activa?tipo=recogida", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activa models.Parada
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["parada"], &activa))
	assert.Equal(t, created.ID, activa.ID)

	// Delete, then the active lookup reports none.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/padre/paradas/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, base+"/activa?tipo=recogida", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParadaValidationErrors(t *testing.T) {
	r := setupRouter(t)
	padre, estudiante := seedPadreConEstudiante(t, "Teresa", "B-201")
	token := authHeader(t, padre.ID, "padre")
	base := fmt.Sprintf("/padre/estudiantes/%d/paradas", estudiante.ID)

	body := paradaBody("autobus", models.SubtipoPrincipal, true)
	w := doJSON(t, r, http.MethodPost, base, token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"campo":"tipo"`)

	body = paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true)
	body["latitud"] = 120.0
	w = doJSON(t, r, http.MethodPost, base, token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"campo":"latitud"`)

	// Malformed path id.
	w = doJSON(t, r, http.MethodPost, "/padre/estudiantes/abc/paradas", token, paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParadaOwnershipAndAuth(t *testing.T) {
	r := setupRouter(t)
	_, estudiante := seedPadreConEstudiante(t, "Teresa", "B-201")
	intruso, _ := seedPadreConEstudiante(t, "Rodrigo", "B-202")
	base := fmt.Sprintf("/padre/estudiantes/%d/paradas", estudiante.ID)

	// Another parent cannot touch the student's paradas.
	w := doJSON(t, r, http.MethodPost, base, authHeader(t, intruso.ID, "padre"), paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No token at all.
	w = doJSON(t, r, http.MethodPost, base, "", paradaBody(models.TipoRecogida, models.SubtipoPrincipal, true))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin may manage any student's paradas.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/admin/estudiantes/%d/paradas", estudiante.ID),
		authHeader(t, 99, "admin"), paradaBody(models.TipoEntrega, models.SubtipoPrincipal, true))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
