package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ignite/tuition-service/internal/model"
	"github.com/rs/zerolog"
)

// StudentClient talks to the student service, which owns enrollment.
type StudentClient struct {
	httpClient
}

// NewStudentClient creates a StudentClient for the service at baseURL.
func NewStudentClient(baseURL string, timeout time.Duration, log zerolog.Logger) *StudentClient {
	return &StudentClient{httpClient: newHTTPClient("student", baseURL, timeout, log)}
}

type setTuitionRequest struct {
	TuitionID *string `json:"tuitionId"`
}

// GetStudent fetches the student projection.
// GET /api/v1/student/get/:studentId
func (c *StudentClient) GetStudent(ctx context.Context, studentID, token string) (*model.Student, error) {
	var s model.Student
	if err := c.do(ctx, http.MethodGet, "/api/v1/student/get/"+url.PathEscape(studentID), token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetTuition sets the student's tuition, or clears it when tuitionID is nil.
// PUT /api/v1/student/:studentId/tuition
func (c *StudentClient) SetTuition(ctx context.Context, studentID string, tuitionID *string, token string) (*model.Student, error) {
	var s model.Student
	path := "/api/v1/student/" + url.PathEscape(studentID) + "/tuition"
	if err := c.do(ctx, http.MethodPut, path, token, setTuitionRequest{TuitionID: tuitionID}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RemoveTuition clears the tuition from every student enrolled in it.
// The student service treats a tuition with no students as success.
// DELETE /api/v1/student/remove/tuition/:tuitionId
func (c *StudentClient) RemoveTuition(ctx context.Context, tuitionID, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/student/remove/tuition/"+url.PathEscape(tuitionID), token, nil, nil)
}
