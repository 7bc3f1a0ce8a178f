package services

import (
	"context"
	"fmt"
	"sync"

	"teamflow/microservices/projects-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory DuplicationStore used by the duplication tests.
type fakeStore struct {
	mu sync.Mutex

	projects     []models.Project
	departments  []models.Department
	leads        []models.DepartmentLead
	members      []models.ProjectMember
	elements     []models.Element
	tasks        []models.Task
	dependencies []models.TaskDependency
	folders      []models.DocumentFolder
	links        []models.DocumentLink
	chatSettings []models.ChatSettings
	chatRooms    []models.ChatRoom

	failTaskInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindProjectByOwnerAndName(ctx context.Context, owner, name string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].Owner == owner && f.projects[i].Name == name {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertProject(ctx context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, *project)
	return nil
}

func (f *fakeStore) UpdateProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("project not found for status update")
}

func (f *fakeStore) DepartmentsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Department
	for _, d := range f.departments {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) FindDepartmentByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.departments {
		if f.departments[i].ProjectID == projectID && f.departments[i].Name == name {
			d := f.departments[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertDepartment(ctx context.Context, department *models.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.departments = append(f.departments, *department)
	return nil
}

func (f *fakeStore) LeadsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]models.DepartmentLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DepartmentLead
	for _, l := range f.leads {
		if l.DepartmentID == departmentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FindLead(ctx context.Context, departmentID primitive.ObjectID, username string) (*models.DepartmentLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.leads {
		if f.leads[i].DepartmentID == departmentID && f.leads[i].Username == username {
			l := f.leads[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertLead(ctx context.Context, lead *models.DepartmentLead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, *lead)
	return nil
}

func (f *fakeStore) MembersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ProjectMember
	for _, m := range f.members {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) FindMember(ctx context.Context, projectID primitive.ObjectID, username string) (*models.ProjectMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.members {
		if f.members[i].ProjectID == projectID && f.members[i].Username == username {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertMember(ctx context.Context, member *models.ProjectMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeStore) ElementsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Element
	for _, e := range f.elements {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) FindElementByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.elements {
		if f.elements[i].ProjectID == projectID && f.elements[i].Title == title {
			e := f.elements[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertElement(ctx context.Context, element *models.Element) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elements = append(f.elements, *element)
	return nil
}

func (f *fakeStore) TasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) FindTaskByTitle(ctx context.Context, projectID primitive.ObjectID, title string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ProjectID == projectID && f.tasks[i].Title == title {
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertTask(ctx context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTaskInsert {
		return fmt.Errorf("simulated task insert failure")
	}
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeStore) SetTaskParent(ctx context.Context, taskID, parentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			p := parentID
			f.tasks[i].ParentTaskID = &p
			return nil
		}
	}
	return fmt.Errorf("task not found for parent update")
}

func (f *fakeStore) DependenciesByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.TaskDependency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TaskDependency
	for _, d := range f.dependencies {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) FindDependency(ctx context.Context, taskID, dependsOnID primitive.ObjectID) (*models.TaskDependency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.dependencies {
		if f.dependencies[i].TaskID == taskID && f.dependencies[i].DependsOnTaskID == dependsOnID {
			d := f.dependencies[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertDependency(ctx context.Context, dependency *models.TaskDependency) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dependencies = append(f.dependencies, *dependency)
	return nil
}

func (f *fakeStore) FoldersByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentFolder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentFolder
	for _, fo := range f.folders {
		if fo.ProjectID == projectID {
			out = append(out, fo)
		}
	}
	return out, nil
}

func (f *fakeStore) FindFolderByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.DocumentFolder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.folders {
		if f.folders[i].ProjectID == projectID && f.folders[i].Name == name {
			fo := f.folders[i]
			return &fo, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertFolder(ctx context.Context, folder *models.DocumentFolder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, *folder)
	return nil
}

func (f *fakeStore) SetFolderParent(ctx context.Context, folderID, parentID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.folders {
		if f.folders[i].ID == folderID {
			p := parentID
			f.folders[i].ParentFolderID = &p
			return nil
		}
	}
	return fmt.Errorf("folder not found for parent update")
}

func (f *fakeStore) LinksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.DocumentLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentLink
	for _, l := range f.links {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FindLinkByURL(ctx context.Context, projectID primitive.ObjectID, url string) (*models.DocumentLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.links {
		if f.links[i].ProjectID == projectID && f.links[i].URL == url {
			l := f.links[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertLink(ctx context.Context, link *models.DocumentLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, *link)
	return nil
}

func (f *fakeStore) ChatSettingsByProject(ctx context.Context, projectID primitive.ObjectID) (*models.ChatSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.chatSettings {
		if f.chatSettings[i].ProjectID == projectID {
			s := f.chatSettings[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertChatSettings(ctx context.Context, settings *models.ChatSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatSettings = append(f.chatSettings, *settings)
	return nil
}

func (f *fakeStore) ChatRoomsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChatRoom
	for _, r := range f.chatRooms {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) FindChatRoomByName(ctx context.Context, projectID primitive.ObjectID, name string) (*models.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.chatRooms {
		if f.chatRooms[i].ProjectID == projectID && f.chatRooms[i].Name == name {
			r := f.chatRooms[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertChatRoom(ctx context.Context, room *models.ChatRoom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatRooms = append(f.chatRooms, *room)
	return nil
}

func (f *fakeStore) setFailTaskInsert(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failTaskInsert = fail
}
