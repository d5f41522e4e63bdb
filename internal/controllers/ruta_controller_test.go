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
	"ruta_segura/internal/rutas"
)

func seedEstudianteConParada(t *testing.T, codigo, tipoParada string) models.Estudiante {
	t.Helper()
	estudiante := models.Estudiante{Nombre: "Estudiante " + codigo, Codigo: codigo, ColegioID: 1, PadreID: 1, Activo: true}
	require.NoError(t, config.DB.Create(&estudiante).Error)
	if tipoParada != "" {
		parada := models.Parada{
			EstudianteID: estudiante.ID,
			ColegioID:    1,
			Tipo:         tipoParada,
			Subtipo:      models.SubtipoPrincipal,
			Direccion:    "Calle Real 1",
			Latitud:      -33.4,
			Longitud:     -70.6,
			Activa:       true,
		}
		require.NoError(t, config.DB.Create(&parada).Error)
	}
	return estudiante
}

func TestCreateRutaWithGeometry(t *testing.T) {
	r := setupRouter(t)
	token := authHeader(t, 1, "admin")

	w := doJSON(t, r, http.MethodPost, "/admin/rutas", token, map[string]interface{}{
		"nombre":      "Ruta Centro",
		"descripcion": "Recorrido por el centro",
		"colegio_id":  1,
		"turno":       models.TipoRecogida,
		"hora_salida": "07:15",
		"geometry":    `{"type":"LineString","coordinates":[[-70.66,-33.45],[-70.65,-33.44]]}`,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Geometry string `json:"geometry"`
		Turno    string `json:"turno"`
	}
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["ruta"], &resp))
	assert.Equal(t, models.TipoRecogida, resp.Turno)
	assert.Contains(t, resp.Geometry, "LineString")

	// An invalid turno is rejected.
	w = doJSON(t, r, http.MethodPost, "/admin/rutas", token, map[string]interface{}{
		"nombre":     "Ruta Mala",
		"colegio_id": 1,
		"turno":      "mediodia",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsignarEstudiantesPartialSuccess(t *testing.T) {
	r := setupRouter(t)
	token := authHeader(t, 1, "admin")

	ruta := models.Ruta{Nombre: "Ruta Norte", ColegioID: 1, Turno: models.TipoRecogida}
	require.NoError(t, config.DB.Create(&ruta).Error)
	conParada := seedEstudianteConParada(t, "C-301", models.TipoRecogida)
	sinParada := seedEstudianteConParada(t, "C-302", "")

	path := fmt.Sprintf("/admin/rutas/%d/estudiantes", ruta.ID)
	w := doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{
		"estudiante_ids": []uint{conParada.ID, sinParada.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resultado rutas.Resultado
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["resultado"], &resultado))
	assert.Equal(t, 1, resultado.Agregados)
	assert.Equal(t, 0, resultado.Eliminados)
	require.Len(t, resultado.NoAsignables, 1)
	assert.Equal(t, sinParada.ID, resultado.NoAsignables[0].EstudianteID)

	// Reconciling the same target again writes nothing.
	w = doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{
		"estudiante_ids": []uint{conParada.ID, sinParada.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["resultado"], &resultado))
	assert.Equal(t, 0, resultado.Agregados)
	assert.Equal(t, 0, resultado.Eliminados)
}

func TestAsignarEstudiantesErrors(t *testing.T) {
	r := setupRouter(t)
	token := authHeader(t, 1, "admin")

	w := doJSON(t, r, http.MethodPost, "/admin/rutas/abc/estudiantes", token, map[string]interface{}{
		"estudiante_ids": []uint{1},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/rutas/9999/estudiantes", token, map[string]interface{}{
		"estudiante_ids": []uint{1},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A padre token cannot reach the admin reconcile endpoint.
	w = doJSON(t, r, http.MethodPost, "/admin/rutas/1/estudiantes", authHeader(t, 1, "padre"), map[string]interface{}{
		"estudiante_ids": []uint{1},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
