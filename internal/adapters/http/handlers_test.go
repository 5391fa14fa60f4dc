package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/generator"
	"github.com/NirB94/EfsharHeshbon/internal/hint"
	"github.com/NirB94/EfsharHeshbon/internal/solver"
	"github.com/NirB94/EfsharHeshbon/internal/usecase"
	"github.com/NirB94/EfsharHeshbon/internal/validator"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := usecase.NewService(
		solver.NewDFSSolver(),
		generator.NewEmbeddedSolutionGenerator(),
		validator.New(),
		hint.NewTracker(),
		nil,
		5, 99, 20,
	)
	r := gin.New()
	New(uc).Register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSolveEndpoint(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/solve", gin.H{
		"board":      [][]int{{1, 2}, {3, 4}},
		"targetRows": []int{3, 7},
		"targetCols": []int{4, 6},
		"operation":  "+",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Solution    domain.Mask   `json:"solution"`
		MarkedCount int           `json:"markedCount"`
		All         []domain.Mask `json:"allSolutions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Solution == nil || resp.MarkedCount != 4 || len(resp.All) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSolveEndpointNoSolution(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/solve", gin.H{
		"board":      [][]int{{2, 4}, {6, 8}},
		"targetRows": []int{5, 14},
		"targetCols": []int{8, 12},
		"operation":  "+",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("no-solution must be 200, got %d", w.Code)
	}
	var resp struct {
		Solution domain.Mask `json:"solution"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Solution != nil {
		t.Fatalf("expected null solution, got %v", resp.Solution)
	}
}

func TestSolveEndpointRejectsBadOperator(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/solve", gin.H{
		"board":      [][]int{{1}},
		"targetRows": []int{1},
		"targetCols": []int{1},
		"operation":  "-",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestNewGameEndpoint(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/new_game", gin.H{
		"operation":  "*",
		"difficulty": "medium",
		"seed":       12345,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var p domain.Puzzle
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Board) != 5 || p.MinimalMask == nil || p.ID == "" {
		t.Fatalf("incomplete puzzle: %+v", p)
	}
}

func TestSolveManualEndpointValidation(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/solve_manual", gin.H{
		"board":      [][]int{{1, 2}, {3, 4}},
		"targetRows": []int{3},
		"targetCols": []int{4, 6},
		"operation":  "+",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success bool     `json:"success"`
		Errors  []string `json:"validationErrors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || len(resp.Errors) == 0 {
		t.Fatalf("expected validation errors, got %+v", resp)
	}
}

func TestHintFlow(t *testing.T) {
	r := newTestRouter()
	start := doJSON(t, r, http.MethodPost, "/api/hint/start", gin.H{
		"solution": [][]int{{1, 0}, {0, 1}},
	})
	if start.Code != http.StatusOK {
		t.Fatalf("start status = %d", start.Code)
	}
	var started struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(start.Body.Bytes(), &started); err != nil {
		t.Fatal(err)
	}

	next := doJSON(t, r, http.MethodPost, "/api/hint/next", gin.H{"sessionId": started.SessionID})
	var hintResp struct {
		Found bool             `json:"found"`
		Cell  domain.CellCoord `json:"cell"`
	}
	if err := json.Unmarshal(next.Body.Bytes(), &hintResp); err != nil {
		t.Fatal(err)
	}
	if !hintResp.Found || hintResp.Cell != (domain.CellCoord{Row: 0, Col: 0}) {
		t.Fatalf("unexpected hint: %+v", hintResp)
	}

	missing := doJSON(t, r, http.MethodPost, "/api/hint/next", gin.H{"sessionId": "nope"})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", missing.Code)
	}
}
