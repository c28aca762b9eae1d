package api

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, mock := newMockDB(t)
	r := gin.New()
	r.POST("/swap/create", CreateSwapHandler(gdb, nil))
	r.POST("/transfer/create", CreateTransferHandler(gdb, nil))
	r.POST("/transaction/external", CreateExternalTransactionHandler(gdb, nil))
	r.GET("/transaction/list", ListTransactionsHandler(gdb, nil))
	r.GET("/transaction", GetTransactionsHandler(gdb))
	return r, mock
}

func TestCreateSwapPending(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectCommit()

	w, envelope := sendJSON(t, r, "POST", "/swap/create", map[string]any{
		"userId":     "0xabc",
		"fromToken":  "ETH",
		"toToken":    "CBV",
		"fromAmount": 1.5,
		"toAmount":   3000.0,
		"swapRate":   2000.0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Swap transaction created successfully", envelope["message"])
	data := dataField(t, envelope)
	assert.Equal(t, "SWAP", data["type"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "0xabc", data["userId"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSwapMissingFields(t *testing.T) {
	r, _ := transactionRouter(t)
	w, envelope := sendJSON(t, r, "POST", "/swap/create", map[string]any{
		"userId":    "0xabc",
		"fromToken": "ETH",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing required fields: userId, fromToken, toToken, fromAmount, toAmount, swapRate", envelope["message"])
	assert.Nil(t, envelope["data"])
}

func TestCreateTransferMissingFields(t *testing.T) {
	r, _ := transactionRouter(t)
	w, envelope := sendJSON(t, r, "POST", "/transfer/create", map[string]any{
		"userId": "0xabc",
		"amount": 10.0,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing required fields: userId, recipient, amount, tokenAddress", envelope["message"])
}

func TestCreateTransferPending(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	w, envelope := sendJSON(t, r, "POST", "/transfer/create", map[string]any{
		"userId":       "0xabc",
		"recipient":    "0xdef",
		"amount":       10.0,
		"tokenAddress": "0xtoken",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, envelope)
	assert.Equal(t, "TRANSFER", data["type"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "0xdef", data["recipient"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExternalTransactionForcedConfirmed(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))
	// No prior transaction with this hash
	mock.ExpectQuery("SELECT (.+) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	w, envelope := sendJSON(t, r, "POST", "/transaction/external", map[string]any{
		"userId":          "0xabc",
		"type":            "EXTERNAL_TRANSFER",
		"externalTxHash":  "0xhash1",
		"externalService": "uniswap",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "External transaction recorded successfully", envelope["message"])
	data := dataField(t, envelope)
	// Status is CONFIRMED regardless of caller input
	assert.Equal(t, "CONFIRMED", data["status"])
	assert.Equal(t, "0xhash1", data["externalTxHash"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExternalTransactionDuplicateHash(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(userRows(7, "0xabc"))
	// The hash already exists
	mock.ExpectQuery("SELECT (.+) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_tx_hash"}).AddRow(9, "0xhash1"))

	w, envelope := sendJSON(t, r, "POST", "/transaction/external", map[string]any{
		"userId":          "0xabc",
		"type":            "EXTERNAL_TRANSFER",
		"externalTxHash":  "0xhash1",
		"externalService": "uniswap",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Transaction with this external hash already exists", envelope["message"])
	// No insert attempted
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExternalTransactionRejectsUnknownType(t *testing.T) {
	r, _ := transactionRouter(t)
	w, envelope := sendJSON(t, r, "POST", "/transaction/external", map[string]any{
		"userId":          "0xabc",
		"type":            "AIRDROP",
		"externalTxHash":  "0xhash1",
		"externalService": "uniswap",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, envelope["message"], "Invalid transaction type")
}

func TestListTransactionsUnknownUserReturnsEmptyPage(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(noUserRows())

	w, envelope := sendJSON(t, r, "GET", "/transaction/list?userId=0xnobody", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := envelope["data"].([]any)
	require.True(t, ok)
	assert.Empty(t, data)
	assert.Equal(t, float64(0), envelope["pagination"].(map[string]any)["totalItems"])
}

func TestGetTransactionsEmptyWithIDFilterFails(t *testing.T) {
	r, mock := transactionRouter(t)
	mock.ExpectQuery("SELECT count(.+) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w, envelope := sendJSON(t, r, "GET", "/transaction?id=99", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "No transaction found with this ID.", envelope["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsRejectsUnknownQueryParam(t *testing.T) {
	r, _ := transactionRouter(t)
	w, envelope := sendJSON(t, r, "GET", "/transaction?hash=0x1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Invalid query parameter: hash", envelope["message"])
}
