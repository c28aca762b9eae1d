package api

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, mock := newMockDB(t)
	r := gin.New()
	r.POST("/user/signup", SignupHandler(gdb))
	r.PUT("/user/update", UpdateUserHandler(gdb))
	r.GET("/user", ListUsersHandler(gdb))
	return r, mock
}

func TestSignupCreatesWalletUser(t *testing.T) {
	r, mock := userRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(noUserRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	w, envelope := sendJSON(t, r, "POST", "/user/signup", map[string]any{
		"address":  "0xabc",
		"authType": "WALLET",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User created successfully", envelope["message"])
	data := dataField(t, envelope)
	assert.Equal(t, "0xabc", data["address"])
	assert.Equal(t, "WALLET", data["authType"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupExistingAddressActsAsLogin(t *testing.T) {
	r, mock := userRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))

	w, envelope := sendJSON(t, r, "POST", "/user/signup", map[string]any{
		"address":  "0xabc",
		"authType": "WALLET",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User logged in successfully", envelope["message"])
	assert.Equal(t, float64(7), dataField(t, envelope)["id"])
	// No insert happened
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupValidatesAuthTypeFields(t *testing.T) {
	r, _ := userRouter(t)

	w, envelope := sendJSON(t, r, "POST", "/user/signup", map[string]any{"authType": "WALLET"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, envelope["message"], "address")

	w, envelope = sendJSON(t, r, "POST", "/user/signup", map[string]any{"authType": "EMAIL"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, envelope["message"], "email")

	w, envelope = sendJSON(t, r, "POST", "/user/signup", map[string]any{
		"authType": "BOTH",
		"address":  "0xabc",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, envelope["message"], "email")

	w, envelope = sendJSON(t, r, "POST", "/user/signup", map[string]any{"authType": "LDAP"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, envelope["message"], "authType")
}

func TestSignupDuplicateEmailFails(t *testing.T) {
	r, mock := userRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "auth_type"}).AddRow(3, "a@b.c", "EMAIL"))

	w, envelope := sendJSON(t, r, "POST", "/user/signup", map[string]any{
		"email":    "a@b.c",
		"authType": "EMAIL",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "User with this email already exists", envelope["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRequiresUserID(t *testing.T) {
	r, _ := userRouter(t)
	w, envelope := sendJSON(t, r, "PUT", "/user/update", map[string]any{"username": "sam"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "User ID is required", envelope["message"])
}

func TestUpdateUserUnknownAddress(t *testing.T) {
	r, mock := userRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(noUserRows())

	w, envelope := sendJSON(t, r, "PUT", "/user/update", map[string]any{
		"userId":   "0xmissing",
		"username": "sam",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "User not found", envelope["message"])
}

func TestUpdateUserChangesUsername(t *testing.T) {
	r, mock := userRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "username", "auth_type"}).
			AddRow(7, "0xabc", "sam", "WALLET"))

	w, envelope := sendJSON(t, r, "PUT", "/user/update", map[string]any{
		"userId":   "0xabc",
		"username": "sam",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User profile updated successfully", envelope["message"])
	assert.Equal(t, "sam", dataField(t, envelope)["username"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersRejectsUnknownQueryParam(t *testing.T) {
	r, _ := userRouter(t)
	w, envelope := sendJSON(t, r, "GET", "/user?wallet=0xabc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Invalid query parameter: wallet", envelope["message"])
}
