package dto

// CreateClassSessionRequest is the payload for POST /classes
type CreateClassSessionRequest struct {
	Name      string `json:"name" binding:"required" example:"Adult No-Gi"`
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required" example:"19:00"`
	EndTime   string `json:"endTime" binding:"required" example:"20:30"`
}

// RecordAttendanceRequest is the payload for POST /attendance
type RecordAttendanceRequest struct {
	StudentID      int64  `json:"studentId" binding:"required,gt=0"`
	ClassSessionID *int64 `json:"classSessionId,omitempty" binding:"omitempty,gt=0"`
	Date           string `json:"date" binding:"required" example:"2025-08-30"`
	Present        bool   `json:"present"`
}
