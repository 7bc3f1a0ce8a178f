package services

import (
	"context"
	"fmt"
	"time"

	"teamflow/microservices/projects-service/logging"
	"teamflow/microservices/projects-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DuplicationStore is the slice of the data store the duplication job uses:
// project-scoped listings, natural-key point lookups, inserts, and the two
// self-reference updates. Point lookups return (nil, nil) when no row matches.
type DuplicationStore interface {
	FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindProjectByOwnerAndName(ctx context.Context, owner, name string) (*models.Project, error)
	InsertProject(ctx context.Context, project *models.Project) error
	UpdateProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error

	DepartmentsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Department, error)
	FindDepartmentByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.Department, error)
	InsertDepartment(ctx context.Context, department *models.Department) error

	LeadsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.DepartmentLead, error)
	FindLead(ctx context.Context, departmentID primitive.ObjectID, username string) (*models.DepartmentLead, error)
	InsertLead(ctx context.Context, lead *models.DepartmentLead) error

	MembersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectMember, error)
	FindMember(ctx context.Context, projectID primitive.ObjectID, username string) (*models.ProjectMember, error)
	InsertMember(ctx context.Context, member *models.ProjectMember) error

	ElementsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Element, error)
	FindElementByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Element, error)
	InsertElement(ctx context.Context, element *models.Element) error

	TasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	FindTaskByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Task, error)
	InsertTask(ctx context.Context, task *models.Task) error
	SetTaskParent(ctx context.Context, taskID, parentID primitive.ObjectID) error

	DependenciesByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.TaskDependency, error)
	FindDependency(ctx context.Context, taskID, dependsOnID primitive.ObjectID) (*models.TaskDependency, error)
	InsertDependency(ctx context.Context, dependency *models.TaskDependency) error

	FoldersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentFolder, error)
	FindFolderByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.DocumentFolder, error)
	InsertFolder(ctx context.Context, folder *models.DocumentFolder) error
	SetFolderParent(ctx context.Context, folderID, parentID primitive.ObjectID) error

	LinksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentLink, error)
	FindLinkByURL(ctx context.Context, projectID primitive.ObjectID, url string) (*models.DocumentLink, error)
	InsertLink(ctx context.Context, link *models.DocumentLink) error

	ChatSettingsByProject(ctx context.Context, projectID primitive.ObjectID) (*models.ChatSettings, error)
	InsertChatSettings(ctx context.Context, settings *models.ChatSettings) error

	ChatRoomsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ChatRoom, error)
	FindChatRoomByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.ChatRoom, error)
	InsertChatRoom(ctx context.Context, room *models.ChatRoom) error
}

type DuplicationService struct {
	store DuplicationStore
}

func NewDuplicationService(store DuplicationStore) *DuplicationService {
	return &DuplicationService{store: store}
}

// DuplicateProject validates the request, creates (or, for a previous partial
// run, reuses) the destination shell project and launches the clone in the
// background. It returns before any child entity is copied; callers observe
// progress through the destination project's status field. There is no way to
// cancel a running clone once it has been launched.
func (s *DuplicationService) DuplicateProject(ctx context.Context, sourceID primitive.ObjectID, newName, caller string) (*models.Project, error) {
	if newName == "" {
		return nil, fmt.Errorf("new project name is required")
	}

	source, err := s.store.FindProjectByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source project: %v", err)
	}
	if source == nil {
		return nil, fmt.Errorf("source project not found")
	}

	existing, err := s.store.FindProjectByOwnerAndName(ctx, caller, newName)
	if err != nil {
		return nil, fmt.Errorf("failed to check project name: %v", err)
	}

	var destination *models.Project
	if existing != nil {
		// A project stuck in duplicating/error is a previous partial run for
		// this name; re-invoking resumes into it instead of failing.
		if existing.Status != models.ProjectStatusDuplicating && existing.Status != models.ProjectStatusError {
			return nil, fmt.Errorf("project with the same name already exists")
		}
		if err := s.store.UpdateProjectStatus(ctx, existing.ID, models.ProjectStatusDuplicating); err != nil {
			return nil, fmt.Errorf("failed to reset destination project status: %v", err)
		}
		existing.Status = models.ProjectStatusDuplicating
		destination = existing
	} else {
		destination = &models.Project{
			ID:          primitive.NewObjectID(),
			Name:        newName,
			Description: source.Description,
			Status:      models.ProjectStatusDuplicating,
			StartDate:   copyTime(source.StartDate),
			EndDate:     copyTime(source.EndDate),
			Owner:       caller,
			Theme:       source.Theme,
			LogoURL:     source.LogoURL,
			CreatedAt:   time.Now(),
		}
		if err := s.store.InsertProject(ctx, destination); err != nil {
			return nil, fmt.Errorf("failed to create destination project: %v", err)
		}
	}

	logging.Logger.Infof("Event ID: PROJECT_DUPLICATION_STARTED, Description: Duplicating project %s into %s (%s) for user %s", sourceID.Hex(), destination.ID.Hex(), newName, caller)

	// Detached from the request context: the clone outlives the HTTP call and
	// the only feedback channel is the destination project's status.
	go s.runClone(context.Background(), source, destination, caller)

	return destination, nil
}

// runClone executes the cloners in dependency order. On the first failure it
// marks the destination project as errored and stops; rows written so far are
// left in place so a later re-run can pick up where this one stopped.
func (s *DuplicationService) runClone(ctx context.Context, source, destination *models.Project, caller string) {
	run := newCloneRun(s.store, source.ID, destination.ID, caller)

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"departments", run.cloneDepartments},
		{"department leads", run.cloneDepartmentLeads},
		{"project members", run.cloneProjectMembers},
		{"elements", run.cloneElements},
		{"tasks", run.cloneTasks},
		{"task parent links", run.patchTaskParents},
		{"task dependencies", run.cloneTaskDependencies},
		{"document folders", run.cloneDocumentFolders},
		{"folder parent links", run.patchFolderParents},
		{"document links", run.cloneDocumentLinks},
		{"chat settings", run.cloneChatSettings},
		{"chat rooms", run.cloneChatRooms},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			logging.Logger.Errorf("Event ID: PROJECT_DUPLICATION_FAILED, Description: Duplication of project %s into %s failed while cloning %s: %v", source.ID.Hex(), destination.ID.Hex(), step.name, err)
			if statusErr := s.store.UpdateProjectStatus(ctx, destination.ID, models.ProjectStatusError); statusErr != nil {
				logging.Logger.Errorf("Event ID: PROJECT_STATUS_UPDATE_FAILED, Description: Failed to mark project %s as errored: %v", destination.ID.Hex(), statusErr)
			}
			return
		}
	}

	if err := s.store.UpdateProjectStatus(ctx, destination.ID, models.ProjectStatusActive); err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_STATUS_UPDATE_FAILED, Description: Failed to mark project %s as active: %v", destination.ID.Hex(), err)
		return
	}
	logging.Logger.Infof("Event ID: PROJECT_DUPLICATION_COMPLETED, Description: Project %s duplicated into %s", source.ID.Hex(), destination.ID.Hex())
}

// identityMap translates source entity ids to the ids of their destination
// copies. One map exists per entity type for the lifetime of a single run.
type identityMap map[primitive.ObjectID]primitive.ObjectID

// lookup rewrites an optional foreign key through the map. References to rows
// without a mapping (dangling in the source) are dropped rather than copied.
func (m identityMap) lookup(id *primitive.ObjectID) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	mapped, ok := m[*id]
	if !ok {
		return nil
	}
	return &mapped
}

type cloneRun struct {
	store    DuplicationStore
	sourceID primitive.ObjectID
	destID   primitive.ObjectID
	caller   string

	departments identityMap
	elements    identityMap
	tasks       identityMap
	folders     identityMap
}

func newCloneRun(store DuplicationStore, sourceID, destID primitive.ObjectID, caller string) *cloneRun {
	return &cloneRun{
		store:       store,
		sourceID:    sourceID,
		destID:      destID,
		caller:      caller,
		departments: identityMap{},
		elements:    identityMap{},
		tasks:       identityMap{},
		folders:     identityMap{},
	}
}

func (r *cloneRun) cloneDepartments(ctx context.Context) error {
	departments, err := r.store.DepartmentsByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source departments: %v", err)
	}

	for _, d := range departments {
		existing, err := r.store.FindDepartmentByName(ctx, r.destID, d.Name)
		if err != nil {
			return fmt.Errorf("failed to look up department %q: %v", d.Name, err)
		}
		if existing != nil {
			r.departments[d.ID] = existing.ID
			continue
		}

		dup := models.Department{
			ID:          primitive.NewObjectID(),
			Name:        d.Name,
			Description: d.Description,
			ProjectID:   r.destID,
		}
		if err := r.store.InsertDepartment(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert department %q: %v", d.Name, err)
		}
		r.departments[d.ID] = dup.ID
	}
	return nil
}

func (r *cloneRun) cloneDepartmentLeads(ctx context.Context) error {
	departments, err := r.store.DepartmentsByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source departments: %v", err)
	}

	for _, d := range departments {
		destDeptID, ok := r.departments[d.ID]
		if !ok {
			return fmt.Errorf("department %s has no identity mapping", d.ID.Hex())
		}

		leads, err := r.store.LeadsByDepartment(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("failed to list leads for department %q: %v", d.Name, err)
		}
		for _, lead := range leads {
			existing, err := r.store.FindLead(ctx, destDeptID, lead.Username)
			if err != nil {
				return fmt.Errorf("failed to look up lead %q: %v", lead.Username, err)
			}
			if existing != nil {
				continue
			}

			dup := models.DepartmentLead{
				ID:           primitive.NewObjectID(),
				DepartmentID: destDeptID,
				Username:     lead.Username,
				AssignedBy:   r.caller,
			}
			if err := r.store.InsertLead(ctx, &dup); err != nil {
				return fmt.Errorf("failed to insert lead %q: %v", lead.Username, err)
			}
		}
	}
	return nil
}

func (r *cloneRun) cloneProjectMembers(ctx context.Context) error {
	members, err := r.store.MembersByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source members: %v", err)
	}

	for _, m := range members {
		existing, err := r.store.FindMember(ctx, r.destID, m.Username)
		if err != nil {
			return fmt.Errorf("failed to look up member %q: %v", m.Username, err)
		}
		if existing != nil {
			continue
		}

		dup := models.ProjectMember{
			ID:        primitive.NewObjectID(),
			ProjectID: r.destID,
			Username:  m.Username,
			Role:      m.Role,
			AddedBy:   r.caller,
		}
		if err := r.store.InsertMember(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert member %q: %v", m.Username, err)
		}
	}
	return nil
}

func (r *cloneRun) cloneElements(ctx context.Context) error {
	elements, err := r.store.ElementsByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source elements: %v", err)
	}

	for _, e := range elements {
		existing, err := r.store.FindElementByTitle(ctx, r.destID, e.Title)
		if err != nil {
			return fmt.Errorf("failed to look up element %q: %v", e.Title, err)
		}
		if existing != nil {
			r.elements[e.ID] = existing.ID
			continue
		}

		dup := models.Element{
			ID:           primitive.NewObjectID(),
			Title:        e.Title,
			Description:  e.Description,
			ProjectID:    r.destID,
			DepartmentID: r.departments.lookup(e.DepartmentID),
			Priority:     e.Priority,
			StartDate:    copyTime(e.StartDate),
			DueDate:      copyTime(e.DueDate),
		}
		if err := r.store.InsertElement(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert element %q: %v", e.Title, err)
		}
		r.elements[e.ID] = dup.ID
	}
	return nil
}

// cloneTasks copies structural and descriptive task fields only. Status,
// progress, actual cost, logged hours and assignees always start fresh in the
// destination project. Parent links are deferred to patchTaskParents.
func (r *cloneRun) cloneTasks(ctx context.Context) error {
	tasks, err := r.store.TasksByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source tasks: %v", err)
	}

	for _, t := range tasks {
		existing, err := r.store.FindTaskByTitle(ctx, r.destID, t.Title)
		if err != nil {
			return fmt.Errorf("failed to look up task %q: %v", t.Title, err)
		}
		if existing != nil {
			r.tasks[t.ID] = existing.ID
			continue
		}

		dup := models.Task{
			ID:            primitive.NewObjectID(),
			Title:         t.Title,
			Description:   t.Description,
			ProjectID:     r.destID,
			ElementID:     r.elements.lookup(t.ElementID),
			DepartmentID:  r.departments.lookup(t.DepartmentID),
			Status:        models.StatusPending,
			Priority:      t.Priority,
			Labels:        append([]string(nil), t.Labels...),
			StartDate:     copyTime(t.StartDate),
			DueDate:       copyTime(t.DueDate),
			EstimatedCost: t.EstimatedCost,
			EstimateHours: t.EstimateHours,
		}
		if err := r.store.InsertTask(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert task %q: %v", t.Title, err)
		}
		r.tasks[t.ID] = dup.ID
	}
	return nil
}

// patchTaskParents is the second pass over tasks: once every task has an
// identity mapping, parent links can be rewritten without caring about the
// order the rows were inserted in.
func (r *cloneRun) patchTaskParents(ctx context.Context) error {
	tasks, err := r.store.TasksByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source tasks: %v", err)
	}

	for _, t := range tasks {
		if t.ParentTaskID == nil {
			continue
		}
		newID, ok := r.tasks[t.ID]
		if !ok {
			return fmt.Errorf("task %s has no identity mapping", t.ID.Hex())
		}
		newParentID, ok := r.tasks[*t.ParentTaskID]
		if !ok {
			return fmt.Errorf("parent task %s has no identity mapping", t.ParentTaskID.Hex())
		}
		if err := r.store.SetTaskParent(ctx, newID, newParentID); err != nil {
			return fmt.Errorf("failed to set parent for task %q: %v", t.Title, err)
		}
	}
	return nil
}

func (r *cloneRun) cloneTaskDependencies(ctx context.Context) error {
	dependencies, err := r.store.DependenciesByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source task dependencies: %v", err)
	}

	for _, dep := range dependencies {
		newTaskID, ok := r.tasks[dep.TaskID]
		if !ok {
			return fmt.Errorf("dependency references task %s with no identity mapping", dep.TaskID.Hex())
		}
		newDependsOnID, ok := r.tasks[dep.DependsOnTaskID]
		if !ok {
			return fmt.Errorf("dependency references task %s with no identity mapping", dep.DependsOnTaskID.Hex())
		}

		existing, err := r.store.FindDependency(ctx, newTaskID, newDependsOnID)
		if err != nil {
			return fmt.Errorf("failed to look up task dependency: %v", err)
		}
		if existing != nil {
			continue
		}

		dup := models.TaskDependency{
			ID:              primitive.NewObjectID(),
			ProjectID:       r.destID,
			TaskID:          newTaskID,
			DependsOnTaskID: newDependsOnID,
		}
		if err := r.store.InsertDependency(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert task dependency: %v", err)
		}
	}
	return nil
}

func (r *cloneRun) cloneDocumentFolders(ctx context.Context) error {
	folders, err := r.store.FoldersByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source folders: %v", err)
	}

	for _, f := range folders {
		existing, err := r.store.FindFolderByName(ctx, r.destID, f.Name)
		if err != nil {
			return fmt.Errorf("failed to look up folder %q: %v", f.Name, err)
		}
		if existing != nil {
			r.folders[f.ID] = existing.ID
			continue
		}

		dup := models.DocumentFolder{
			ID:           primitive.NewObjectID(),
			Name:         f.Name,
			ProjectID:    r.destID,
			DepartmentID: r.departments.lookup(f.DepartmentID),
		}
		if err := r.store.InsertFolder(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert folder %q: %v", f.Name, err)
		}
		r.folders[f.ID] = dup.ID
	}
	return nil
}

func (r *cloneRun) patchFolderParents(ctx context.Context) error {
	folders, err := r.store.FoldersByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source folders: %v", err)
	}

	for _, f := range folders {
		if f.ParentFolderID == nil {
			continue
		}
		newID, ok := r.folders[f.ID]
		if !ok {
			return fmt.Errorf("folder %s has no identity mapping", f.ID.Hex())
		}
		newParentID, ok := r.folders[*f.ParentFolderID]
		if !ok {
			return fmt.Errorf("parent folder %s has no identity mapping", f.ParentFolderID.Hex())
		}
		if err := r.store.SetFolderParent(ctx, newID, newParentID); err != nil {
			return fmt.Errorf("failed to set parent for folder %q: %v", f.Name, err)
		}
	}
	return nil
}

func (r *cloneRun) cloneDocumentLinks(ctx context.Context) error {
	links, err := r.store.LinksByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source document links: %v", err)
	}

	for _, l := range links {
		existing, err := r.store.FindLinkByURL(ctx, r.destID, l.URL)
		if err != nil {
			return fmt.Errorf("failed to look up document link %q: %v", l.URL, err)
		}
		if existing != nil {
			continue
		}

		dup := models.DocumentLink{
			ID:           primitive.NewObjectID(),
			Title:        l.Title,
			URL:          l.URL,
			Description:  l.Description,
			ProjectID:    r.destID,
			DepartmentID: r.departments.lookup(l.DepartmentID),
			FolderID:     r.folders.lookup(l.FolderID),
			CreatedBy:    r.caller,
		}
		if err := r.store.InsertLink(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert document link %q: %v", l.URL, err)
		}
	}
	return nil
}

func (r *cloneRun) cloneChatSettings(ctx context.Context) error {
	settings, err := r.store.ChatSettingsByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to fetch source chat settings: %v", err)
	}
	if settings == nil {
		return nil
	}

	existing, err := r.store.ChatSettingsByProject(ctx, r.destID)
	if err != nil {
		return fmt.Errorf("failed to fetch destination chat settings: %v", err)
	}
	if existing != nil {
		return nil
	}

	dup := models.ChatSettings{
		ID:               primitive.NewObjectID(),
		ProjectID:        r.destID,
		PublicChat:       settings.PublicChat,
		RetentionDays:    settings.RetentionDays,
		MaxFileSizeMB:    settings.MaxFileSizeMB,
		AllowedFileTypes: append([]string(nil), settings.AllowedFileTypes...),
	}
	if err := r.store.InsertChatSettings(ctx, &dup); err != nil {
		return fmt.Errorf("failed to insert chat settings: %v", err)
	}
	return nil
}

// cloneChatRooms copies room structure only; the invoking user becomes the
// sole participant of every new room.
func (r *cloneRun) cloneChatRooms(ctx context.Context) error {
	rooms, err := r.store.ChatRoomsByProject(ctx, r.sourceID)
	if err != nil {
		return fmt.Errorf("failed to list source chat rooms: %v", err)
	}

	for _, room := range rooms {
		existing, err := r.store.FindChatRoomByName(ctx, r.destID, room.Name)
		if err != nil {
			return fmt.Errorf("failed to look up chat room %q: %v", room.Name, err)
		}
		if existing != nil {
			continue
		}

		dup := models.ChatRoom{
			ID:        primitive.NewObjectID(),
			Name:      room.Name,
			ProjectID: r.destID,
			RoomType:  room.RoomType,
			Participants: []models.ChatParticipant{
				{Username: r.caller, JoinedAt: time.Now()},
			},
		}
		if err := r.store.InsertChatRoom(ctx, &dup); err != nil {
			return fmt.Errorf("failed to insert chat room %q: %v", room.Name, err)
		}
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
