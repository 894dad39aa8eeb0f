package model

// Role is the access level of a user.
type Role string

const (
	RoleAdmin    Role = "ADMINISTRADOR"
	RoleEmployee Role = "EMPLEADO"
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "BAJA"
	PriorityMedium Priority = "MEDIA"
	PriorityHigh   Priority = "ALTA"
)

// Status is the kanban column of a task. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "PENDIENTE"
	StatusInProgress Status = "EN_PROGRESO"
	StatusReview     Status = "REVISION"
	StatusDone       Status = "COMPLETADA"
)

// Statuses lists the workflow columns in board order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusReview, StatusDone}

// Priorities lists task priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ResourceType classifies a shared resource link.
type ResourceType string

const (
	ResourceFolder      ResourceType = "FOLDER"
	ResourceDocument    ResourceType = "DOCUMENT"
	ResourceSpreadsheet ResourceType = "SPREADSHEET"
	ResourceOther       ResourceType = "OTHER"
)

// Visibility controls who sees a resource in listings.
type Visibility string

const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityAdminOnly Visibility = "ADMIN_ONLY"
)
