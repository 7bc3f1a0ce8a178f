package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"teamflow/microservices/projects-service/services"
	"teamflow/microservices/projects-service/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DuplicationHandler struct {
	Service *services.DuplicationService
}

func NewDuplicationHandler(service *services.DuplicationService) *DuplicationHandler {
	return &DuplicationHandler{Service: service}
}

type duplicateProjectRequest struct {
	ProjectID      string `json:"projectId"`
	NewProjectName string `json:"newProjectName"`
}

type duplicateProjectResponse struct {
	Success      bool   `json:"success"`
	NewProjectID string `json:"newProjectId"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

// DuplicateProjectHandler starts an asynchronous project duplication. The
// response is sent as soon as the destination shell project exists; the clone
// itself finishes in the background.
func (h *DuplicationHandler) DuplicateProjectHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	username, err := utils.ExtractUsernameFromToken(strings.TrimPrefix(tokenString, "Bearer "))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req duplicateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ProjectID == "" || req.NewProjectName == "" {
		writeError(w, http.StatusBadRequest, "projectId and newProjectName are required")
		return
	}

	sourceID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	project, err := h.Service.DuplicateProject(r.Context(), sourceID, req.NewProjectName, username)
	if err != nil {
		switch err.Error() {
		case "source project not found":
			writeError(w, http.StatusNotFound, err.Error())
		case "project with the same name already exists":
			writeError(w, http.StatusConflict, err.Error())
		case "new project name is required":
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to start project duplication")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(duplicateProjectResponse{
		Success:      true,
		NewProjectID: project.ID.Hex(),
		Status:       string(project.Status),
		Message:      "Project duplication started",
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
