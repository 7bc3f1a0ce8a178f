package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"teamflow/microservices/projects-service/clients"
	"teamflow/microservices/projects-service/handlers"
	"teamflow/microservices/projects-service/logging"
	"teamflow/microservices/projects-service/repositories"
	"teamflow/microservices/projects-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// createProjectNameIndex enforces name uniqueness per owner at the store level.
func createProjectNameIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on project owner and name: %v", err)
	}
	return nil
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Projects Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)

	if err := createProjectNameIndex(db.Collection("projects")); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	notificationClient := clients.NewNotificationClient(os.Getenv("NOTIFICATIONS_SERVICE_URL"))

	projectService := services.NewProjectService(
		db.Collection("projects"),
		db.Collection("project_members"),
		db.Collection("tasks"),
		db.Collection("users"),
		notificationClient,
	)

	duplicationStore := repositories.NewMongoDuplicationStore(db)
	duplicationService := services.NewDuplicationService(duplicationStore)

	projectHandler := handlers.NewProjectHandler(projectService)
	duplicationHandler := handlers.NewDuplicationHandler(duplicationService)

	r := mux.NewRouter()
	r.HandleFunc("/api/projects", projectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/projects", projectHandler.ListProjectsHandler).Methods("GET")
	r.HandleFunc("/api/projects/duplicate", duplicationHandler.DuplicateProjectHandler).Methods("POST")
	r.HandleFunc("/api/projects/{id}", projectHandler.GetProjectByIDHandler).Methods("GET")
	r.HandleFunc("/api/projects/{id}/members", projectHandler.AddMembersToProjectHandler).Methods("POST")
	r.HandleFunc("/api/projects/{id}/members", projectHandler.GetProjectMembersHandler).Methods("GET")
	r.HandleFunc("/api/projects/{id}/tasks", projectHandler.GetTasksForProjectHandler).Methods("GET")

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Role")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
