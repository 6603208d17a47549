package mocks

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
)

// In-memory repository doubles. Call counters are exposed so tests can
// assert how many mutations an operation issued, not just the end state.

// MockUserRepository implements repositories.UserRepository over maps.
type MockUserRepository struct {
	Users         map[string]*models.User
	RefreshTokens map[string]*models.RefreshToken

	CreateError error
	UpdateError error
	CreateCalls int

	// FindByEmailErrors injects a lookup failure for specific addresses.
	FindByEmailErrors map[string]error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:         make(map[string]*models.User),
		RefreshTokens: make(map[string]*models.RefreshToken),
	}
}

// Add stores a user directly, assigning an id when absent.
func (m *MockUserRepository) Add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.Users[user.ID] = user
	return user
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	if err, ok := m.FindByEmailErrors[email]; ok {
		return nil, err
	}
	for _, user := range m.Users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *MockUserRepository) FindByResetToken(token string) (*models.User, error) {
	if token == "" {
		return nil, repositories.ErrUserNotFound
	}
	for _, user := range m.Users {
		if user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *MockUserRepository) Create(user *models.User) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, err := m.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	m.Add(user)
	return nil
}

func (m *MockUserRepository) Update(user *models.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	m.Users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) UpdateRole(userID string, role models.UserRole) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (m *MockUserRepository) UpdatePassword(userID, passwordHash string, mustChange bool) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChange
	user.ResetToken = ""
	user.ResetTokenExp = nil
	return nil
}

func (m *MockUserRepository) SetResetToken(userID, token string, expiresAt time.Time) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ResetToken = token
	user.ResetTokenExp = &expiresAt
	return nil
}

func (m *MockUserRepository) SetTOTPSecret(userID, secret string) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TOTPSecret = secret
	user.MFAEnabled = false
	return nil
}

func (m *MockUserRepository) SetMFAEnabled(userID string, enabled bool) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.MFAEnabled = enabled
	return nil
}

func (m *MockUserRepository) UpdateStatus(userID string, status models.UserStatus) error {
	user, ok := m.Users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (m *MockUserRepository) FindWithFilter(criteria repositories.UserFilter) ([]models.User, int64, error) {
	var matched []models.User
	for _, user := range m.Users {
		if criteria.Role != "" && user.Role != criteria.Role {
			continue
		}
		if criteria.Status != "" && user.Status != criteria.Status {
			continue
		}
		if criteria.Search != "" &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(criteria.Search)) &&
			!strings.Contains(strings.ToLower(user.Name), strings.ToLower(criteria.Search)) {
			continue
		}
		matched = append(matched, *user)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Email < matched[j].Email })
	return matched, int64(len(matched)), nil
}

func (m *MockUserRepository) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	for _, user := range m.Users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *MockUserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	m.RefreshTokens[token.Token] = token
	return nil
}

func (m *MockUserRepository) FindRefreshToken(token string) (*models.RefreshToken, error) {
	stored, ok := m.RefreshTokens[token]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *stored
	return &copied, nil
}

func (m *MockUserRepository) DeleteRefreshToken(token string) error {
	delete(m.RefreshTokens, token)
	return nil
}

func (m *MockUserRepository) DeleteUserRefreshTokens(userID string) error {
	for key, token := range m.RefreshTokens {
		if token.UserID == userID {
			delete(m.RefreshTokens, key)
		}
	}
	return nil
}

func (m *MockUserRepository) CountUserRefreshTokens(userID string) (int64, error) {
	var count int64
	for _, token := range m.RefreshTokens {
		if token.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockUserRepository) CleanExpiredRefreshTokens() error {
	now := time.Now()
	for key, token := range m.RefreshTokens {
		if now.After(token.ExpiresAt) {
			delete(m.RefreshTokens, key)
		}
	}
	return nil
}

// MockToolRepository implements repositories.ToolRepository over a map.
type MockToolRepository struct {
	Tools       map[string]*models.Tool
	CreateError error
}

func NewMockToolRepository() *MockToolRepository {
	return &MockToolRepository{Tools: make(map[string]*models.Tool)}
}

func (m *MockToolRepository) Add(tool *models.Tool) *models.Tool {
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}
	m.Tools[tool.ID] = tool
	return tool
}

func (m *MockToolRepository) Create(tool *models.Tool) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Add(tool)
	return nil
}

func (m *MockToolRepository) FindByID(id string) (*models.Tool, error) {
	tool, ok := m.Tools[id]
	if !ok {
		return nil, repositories.ErrToolNotFound
	}
	copied := *tool
	return &copied, nil
}

func (m *MockToolRepository) FindWithFilter(criteria repositories.ToolFilter) ([]models.Tool, int64, error) {
	var matched []models.Tool
	for _, tool := range m.Tools {
		if criteria.OwnerID != "" && tool.OwnerID != criteria.OwnerID {
			continue
		}
		if criteria.ApprovalStatus != "" && tool.ApprovalStatus != criteria.ApprovalStatus {
			continue
		}
		if criteria.Search != "" &&
			!strings.Contains(strings.ToLower(tool.Name), strings.ToLower(criteria.Search)) {
			continue
		}
		matched = append(matched, *tool)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, int64(len(matched)), nil
}

func (m *MockToolRepository) Update(tool *models.Tool) error {
	if _, ok := m.Tools[tool.ID]; !ok {
		return repositories.ErrToolNotFound
	}
	copied := *tool
	m.Tools[tool.ID] = &copied
	return nil
}

func (m *MockToolRepository) UpdateApprovalStatus(toolID string, status models.ApprovalStatus) error {
	tool, ok := m.Tools[toolID]
	if !ok {
		return repositories.ErrToolNotFound
	}
	tool.ApprovalStatus = status
	return nil
}

func (m *MockToolRepository) Delete(toolID string) error {
	if _, ok := m.Tools[toolID]; !ok {
		return repositories.ErrToolNotFound
	}
	delete(m.Tools, toolID)
	return nil
}

func (m *MockToolRepository) CountByApprovalStatus() (map[models.ApprovalStatus]int64, error) {
	counts := make(map[models.ApprovalStatus]int64)
	for _, tool := range m.Tools {
		counts[tool.ApprovalStatus]++
	}
	return counts, nil
}

// MockRequestRepository implements repositories.RequestRepository over a
// map, counting UpdateStatus and Delete calls for bulk-operation tests.
type MockRequestRepository struct {
	Requests map[string]*models.Request

	UpdateStatusCalls int
	DeleteCalls       int
	UpdateStatusError error
	DeleteError       error
	FailIDs           map[string]bool
}

func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{
		Requests: make(map[string]*models.Request),
		FailIDs:  make(map[string]bool),
	}
}

func (m *MockRequestRepository) Add(request *models.Request) *models.Request {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}
	m.Requests[request.ID] = request
	return request
}

func (m *MockRequestRepository) Create(request *models.Request) error {
	m.Add(request)
	return nil
}

func (m *MockRequestRepository) FindByID(id string) (*models.Request, error) {
	request, ok := m.Requests[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (m *MockRequestRepository) FindWithFilter(criteria repositories.RequestFilter) ([]models.Request, int64, error) {
	var matched []models.Request
	for _, request := range m.Requests {
		if criteria.RequesterID != "" && request.RequesterID != criteria.RequesterID {
			continue
		}
		if criteria.Status != "" && request.Status != criteria.Status {
			continue
		}
		if criteria.Search != "" &&
			!strings.Contains(strings.ToLower(request.ToolName), strings.ToLower(criteria.Search)) {
			continue
		}
		matched = append(matched, *request)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ToolName < matched[j].ToolName })
	return matched, int64(len(matched)), nil
}

func (m *MockRequestRepository) UpdateStatus(requestID string, status models.RequestStatus) error {
	m.UpdateStatusCalls++
	if m.UpdateStatusError != nil || m.FailIDs[requestID] {
		if m.UpdateStatusError != nil {
			return m.UpdateStatusError
		}
		return repositories.ErrRequestNotFound
	}
	request, ok := m.Requests[requestID]
	if !ok {
		return repositories.ErrRequestNotFound
	}
	request.Status = status
	return nil
}

func (m *MockRequestRepository) UpdateAssignee(requestID, assigneeID string) error {
	request, ok := m.Requests[requestID]
	if !ok {
		return repositories.ErrRequestNotFound
	}
	request.AssigneeID = assigneeID
	return nil
}

func (m *MockRequestRepository) Delete(requestID string) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if m.FailIDs[requestID] {
		return repositories.ErrRequestNotFound
	}
	if _, ok := m.Requests[requestID]; !ok {
		return repositories.ErrRequestNotFound
	}
	delete(m.Requests, requestID)
	return nil
}

func (m *MockRequestRepository) CountByStatus() (map[models.RequestStatus]int64, error) {
	counts := make(map[models.RequestStatus]int64)
	for _, request := range m.Requests {
		counts[request.Status]++
	}
	return counts, nil
}

// MockNotificationRepository implements
// repositories.NotificationRepository, counting MarkAsRead calls so tests
// can assert idempotence.
type MockNotificationRepository struct {
	Notifications map[string]*models.Notification

	MarkAsReadCalls int
	MarkAsReadError error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{Notifications: make(map[string]*models.Notification)}
}

func (m *MockNotificationRepository) Add(notification *models.Notification) *models.Notification {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	m.Notifications[notification.ID] = notification
	return notification
}

func (m *MockNotificationRepository) Create(notification *models.Notification) error {
	m.Add(notification)
	return nil
}

func (m *MockNotificationRepository) CreateBulk(notifications []*models.Notification) error {
	for _, notification := range notifications {
		m.Add(notification)
	}
	return nil
}

func (m *MockNotificationRepository) FindForUser(userID, notificationID string) (*models.Notification, error) {
	notification, ok := m.Notifications[notificationID]
	if !ok || notification.UserID != userID {
		return nil, repositories.ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

func (m *MockNotificationRepository) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	var matched []models.Notification
	for _, notification := range m.Notifications {
		if notification.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && notification.IsRead {
			continue
		}
		if criteria.Type != "" && notification.Type != criteria.Type {
			continue
		}
		matched = append(matched, *notification)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, int64(len(matched)), nil
}

func (m *MockNotificationRepository) FindRecent(userID string, limit int) ([]models.Notification, error) {
	matched, _, err := m.FindUserNotifications(userID, repositories.NotificationCriteria{})
	if err != nil {
		return nil, err
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockNotificationRepository) MarkAsRead(userID, notificationID string) error {
	m.MarkAsReadCalls++
	if m.MarkAsReadError != nil {
		return m.MarkAsReadError
	}
	notification, ok := m.Notifications[notificationID]
	if !ok || notification.UserID != userID {
		return repositories.ErrNotificationNotFound
	}
	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	return nil
}

func (m *MockNotificationRepository) MarkAllAsRead(userID string) error {
	now := time.Now()
	for _, notification := range m.Notifications {
		if notification.UserID == userID && !notification.IsRead {
			notification.IsRead = true
			notification.ReadAt = &now
		}
	}
	return nil
}

func (m *MockNotificationRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	for _, notification := range m.Notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) Delete(userID, notificationID string) error {
	notification, ok := m.Notifications[notificationID]
	if !ok || notification.UserID != userID {
		return repositories.ErrNotificationNotFound
	}
	delete(m.Notifications, notificationID)
	return nil
}

func (m *MockNotificationRepository) DeleteUserNotifications(userID string) error {
	for id, notification := range m.Notifications {
		if notification.UserID == userID {
			delete(m.Notifications, id)
		}
	}
	return nil
}

func (m *MockNotificationRepository) DeleteReadBefore(userID string, olderThan time.Time) error {
	for id, notification := range m.Notifications {
		if notification.UserID == userID && notification.IsRead && notification.CreatedAt.Before(olderThan) {
			delete(m.Notifications, id)
		}
	}
	return nil
}
