package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

type projectStore struct {
	stored  *models.Project
	created *models.Project
	techs   *[]models.Technology
	updated bool
}

func (s *projectStore) List(context.Context) ([]models.Project, error) { return nil, nil }

func (s *projectStore) Get(_ context.Context, _ string) (*models.Project, error) {
	cp := *s.stored
	return &cp, nil
}

func (s *projectStore) Create(_ context.Context, p *models.Project) error {
	s.created = p
	return nil
}

func (s *projectStore) Update(_ context.Context, p *models.Project, techs *[]models.Technology) error {
	s.stored, s.techs, s.updated = p, techs, true
	return nil
}

func (s *projectStore) Delete(context.Context, string) error { return nil }

type slugResolver struct{}

func (slugResolver) Resolve(_ context.Context, slugs []string) ([]models.Technology, error) {
	out := []models.Technology{}
	for _, s := range slugs {
		if s == "go" {
			out = append(out, models.Technology{Name: "Go", Slug: "go"})
		}
	}
	return out, nil
}

func projectRouter(store *projectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
	h := NewProjectHandler(services.NewContentService[models.Project](store, slugResolver{}, "Projet"))
	r := gin.New()
	r.POST("/projects", h.Create)
	r.PATCH("/projects/:id", h.Update)
	return r
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectHandler(t *testing.T) {
	t.Run("create derives the slug and keeps known technologies", func(t *testing.T) {
		store := &projectStore{}
		w := send(projectRouter(store), http.MethodPost, "/projects",
			`{"title":"Mon Portfolio","description":"Site","startDate":"2024-01-01","endDate":"2024-04-01","technologies":["go","cobol"]}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.NotNil(t, store.created)
		assert.Equal(t, "mon-portfolio", store.created.Slug)
		require.Len(t, store.created.Technologies, 1)
		assert.Equal(t, "go", store.created.Technologies[0].Slug)
		require.NotNil(t, store.created.DurationMonths)
		assert.Equal(t, 3, *store.created.DurationMonths)
	})

	t.Run("explicit slug is normalized", func(t *testing.T) {
		store := &projectStore{}
		w := send(projectRouter(store), http.MethodPost, "/projects",
			`{"title":"Site","slug":"My Project","technologies":[]}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.NotNil(t, store.created)
		assert.Equal(t, "my-project", store.created.Slug)
	})

	t.Run("missing title", func(t *testing.T) {
		store := &projectStore{}
		w := send(projectRouter(store), http.MethodPost, "/projects", `{"description":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, store.created)
	})

	t.Run("update without technologies keeps them", func(t *testing.T) {
		place := "Lyon"
		store := &projectStore{stored: &models.Project{BaseModel: models.BaseModel{ID: "p-1"}, Title: "Old", Slug: "old", Place: &place}}
		w := send(projectRouter(store), http.MethodPatch, "/projects/p-1", `{"title":"New","place":""}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, store.updated)
		assert.Nil(t, store.techs)
		assert.Equal(t, "New", store.stored.Title)
		assert.Equal(t, "old", store.stored.Slug)
		assert.Nil(t, store.stored.Place)
	})

	t.Run("update with an empty list clears them", func(t *testing.T) {
		store := &projectStore{stored: &models.Project{BaseModel: models.BaseModel{ID: "p-1"}, Title: "Old", Slug: "old"}}
		w := send(projectRouter(store), http.MethodPatch, "/projects/p-1", `{"technologies":[]}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, store.techs)
		assert.Empty(t, *store.techs)
	})
}
