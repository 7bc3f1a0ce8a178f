package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"teamflow/microservices/projects-service/services"
	"teamflow/microservices/projects-service/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func callerFromRequest(r *http.Request) (string, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return "", fmt.Errorf("authorization token required")
	}
	return utils.ExtractUsernameFromToken(strings.TrimPrefix(tokenString, "Bearer "))
}

type createProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	username, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	project, err := h.Service.CreateProject(r.Context(), req.Name, req.Description, req.StartDate, req.EndDate, username)
	if err != nil {
		if err.Error() == "project with the same name already exists" {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

func (h *ProjectHandler) GetProjectByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]

	project, err := h.Service.GetProjectByID(r.Context(), projectID)
	if err != nil {
		if err.Error() == "project not found" {
			writeError(w, http.StatusNotFound, err.Error())
		} else if err.Error() == "invalid project ID format" {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "Error fetching project")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

// ListProjectsHandler returns the projects owned by the caller.
func (h *ProjectHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	username, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	projects, err := h.Service.GetProjectsByOwner(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching projects")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *ProjectHandler) AddMembersToProjectHandler(w http.ResponseWriter, r *http.Request) {
	username, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var usernames []string
	if err := json.NewDecoder(r.Body).Decode(&usernames); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid members data")
		return
	}

	if err := h.Service.AddMembersToProject(r.Context(), projectID, usernames, username); err != nil {
		switch {
		case err.Error() == "project not found":
			writeError(w, http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "not found"):
			writeError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "already a member"):
			writeError(w, http.StatusBadRequest, err.Error())
		case err.Error() == "at least one member is required":
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to add members to project")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Members added successfully"}`))
}

func (h *ProjectHandler) GetProjectMembersHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID := vars["id"]

	members, err := h.Service.GetProjectMembers(r.Context(), projectID)
	if err != nil {
		if err.Error() == "invalid project ID format" {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}

func (h *ProjectHandler) GetTasksForProjectHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	tasks, err := h.Service.GetTasksForProject(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}
