package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/models"
	"github.com/admintools/user-management-api/internal/repository"
	"github.com/admintools/user-management-api/internal/validation"
)

// PermissionHandlerTestSuite defines the test suite for PermissionHandler
type PermissionHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *PermissionHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
	)
	suite.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	suite.Require().NoError(validation.Register())

	handler := NewPermissionHandler(repository.NewPermissionRepository(suite.db))

	suite.router = gin.New()
	suite.router.GET("/permissions", handler.ListPermissions)
	suite.router.POST("/permissions", handler.CreatePermission)
	suite.router.GET("/permissions/:id", handler.GetPermission)
	suite.router.PUT("/permissions/:id", handler.UpdatePermission)
	suite.router.DELETE("/permissions/:id", handler.DeletePermission)
}

// TearDownTest runs after each test
func (suite *PermissionHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PermissionHandlerTestSuite) createTestPermission(code, description string) *models.Permission {
	permission := &models.Permission{
		Code:        code,
		Description: description,
	}
	suite.db.Create(permission)
	return permission
}

func (suite *PermissionHandlerTestSuite) doRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// TestCreateThenGet_RoundTrip tests the end-to-end create/read flow
func (suite *PermissionHandlerTestSuite) TestCreateThenGet_RoundTrip() {
	body, _ := json.Marshal(map[string]string{
		"code":        "Test",
		"description": "TestDescription",
	})

	w := suite.doRequest("POST", "/permissions", body)
	suite.Require().Equal(http.StatusOK, w.Code)

	id, err := strconv.Atoi(strings.TrimSpace(w.Body.String()))
	suite.Require().NoError(err)
	suite.Require().Greater(id, 0)

	w = suite.doRequest("GET", fmt.Sprintf("/permissions/%d", id), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Test", response["code"])
	assert.Equal(suite.T(), "TestDescription", response["description"])
}

// TestCreatePermission_ValidationErrors tests the description length bounds
func (suite *PermissionHandlerTestSuite) TestCreatePermission_ValidationErrors() {
	body, _ := json.Marshal(map[string]string{
		"code":        "a-code-that-is-way-too-long",
		"description": "short",
	})

	w := suite.doRequest("POST", "/permissions", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	details := response["details"].([]interface{})
	suite.Require().Len(details, 2)

	fields := make(map[string]string, len(details))
	for _, detail := range details {
		entry := detail.(map[string]interface{})
		fields[entry["field"].(string)] = entry["error"].(string)
	}
	assert.Equal(suite.T(), "must be at most 20 characters", fields["code"])
	assert.Equal(suite.T(), "must be at least 10 characters", fields["description"])
}

// TestListPermissions_SearchMatchesCode tests substring search over code and description
func (suite *PermissionHandlerTestSuite) TestListPermissions_SearchMatchesCode() {
	suite.createTestPermission("code1", "first permission")
	suite.createTestPermission("code2", "second permission")
	suite.createTestPermission("code3", "third permission")

	w := suite.doRequest("GET", "/permissions?searchTerm=code1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	items := response["items"].([]interface{})
	suite.Require().Len(items, 1)
	assert.Equal(suite.T(), "code1", items[0].(map[string]interface{})["code"])
}

// TestListPermissions_SearchMatchesDescription tests the description side of the filter
func (suite *PermissionHandlerTestSuite) TestListPermissions_SearchMatchesDescription() {
	suite.createTestPermission("read", "grants read access")
	suite.createTestPermission("write", "grants write access")

	w := suite.doRequest("GET", "/permissions?searchTerm=write", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), float64(1), response["totalCount"])
}

// TestListPermissions_SortByCodeDescending tests descending sort
func (suite *PermissionHandlerTestSuite) TestListPermissions_SortByCodeDescending() {
	suite.createTestPermission("alpha", "the alpha permission")
	suite.createTestPermission("gamma", "the gamma permission")
	suite.createTestPermission("beta", "the beta permission")

	w := suite.doRequest("GET", "/permissions?sortColumn=code&sortOrder=DESC", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	items := response["items"].([]interface{})
	suite.Require().Len(items, 3)
	codes := make([]string, len(items))
	for i, item := range items {
		codes[i] = item.(map[string]interface{})["code"].(string)
	}
	assert.Equal(suite.T(), []string{"gamma", "beta", "alpha"}, codes)
}

// TestListPermissions_Paging tests slicing across pages
func (suite *PermissionHandlerTestSuite) TestListPermissions_Paging() {
	for i := 1; i <= 5; i++ {
		suite.createTestPermission(fmt.Sprintf("code%d", i), fmt.Sprintf("permission number %d", i))
	}

	w := suite.doRequest("GET", "/permissions?page=2&pageSize=2", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	items := response["items"].([]interface{})
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), float64(5), response["totalCount"])
	assert.Equal(suite.T(), float64(2), response["page"])
	assert.Equal(suite.T(), float64(2), response["pageSize"])
}

// TestUpdatePermission_Success tests overwriting code and description
func (suite *PermissionHandlerTestSuite) TestUpdatePermission_Success() {
	permission := suite.createTestPermission("old.code", "the old description")

	body, _ := json.Marshal(map[string]string{
		"code":        "new.code",
		"description": "the new description",
	})

	w := suite.doRequest("PUT", fmt.Sprintf("/permissions/%d", permission.ID), body)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	var stored models.Permission
	suite.Require().NoError(suite.db.First(&stored, permission.ID).Error)
	assert.Equal(suite.T(), "new.code", stored.Code)
	assert.Equal(suite.T(), "the new description", stored.Description)
}

// TestUpdatePermission_NotFound tests updating a missing permission
func (suite *PermissionHandlerTestSuite) TestUpdatePermission_NotFound() {
	body, _ := json.Marshal(map[string]string{
		"code":        "ghost",
		"description": "does not exist anywhere",
	})

	w := suite.doRequest("PUT", "/permissions/999", body)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeletePermission_Accepted tests deletion, cascade and idempotency
func (suite *PermissionHandlerTestSuite) TestDeletePermission_Accepted() {
	permission := suite.createTestPermission("perm.read", "grants read access")
	user := &models.User{Username: "alice", PasswordHash: "hashed", Status: true}
	suite.db.Create(user)
	suite.db.Create(&models.UserPermission{UserID: user.ID, PermissionID: permission.ID})

	w := suite.doRequest("DELETE", fmt.Sprintf("/permissions/%d", permission.ID), nil)
	assert.Equal(suite.T(), http.StatusAccepted, w.Code)

	var count int64
	suite.db.Model(&models.UserPermission{}).Where("permission_id = ?", permission.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	w = suite.doRequest("DELETE", fmt.Sprintf("/permissions/%d", permission.ID), nil)
	assert.Equal(suite.T(), http.StatusAccepted, w.Code)

	w = suite.doRequest("GET", fmt.Sprintf("/permissions/%d", permission.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestPermissionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionHandlerTestSuite))
}
