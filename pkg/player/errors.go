package player

import (
	"errors"
	"net/http"
)

var (
	// ErrPlayerNotFound 玩家不存在
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidPlayerID 玩家 ID 为空或包含非法字符
	ErrInvalidPlayerID = errors.New("invalid player id")
	// ErrInvalidLevel 难度等级小于 1
	ErrInvalidLevel = errors.New("invalid question level")
	// ErrSkinNotOwned 选择了未解锁的皮肤
	ErrSkinNotOwned = errors.New("skin not owned")
	// ErrServiceUnavailable 远端服务不可达或返回了无法识别的响应
	ErrServiceUnavailable = errors.New("player service unavailable")
)

// 错误码（JSON 错误体中的 error.code）
const (
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeInvalidPlayerID = "INVALID_PLAYER_ID"
	CodeInvalidLevel    = "INVALID_LEVEL"
	CodeSkinNotOwned    = "SKIN_NOT_OWNED"
	CodeValidation      = "VALIDATION_ERROR"
	CodeServerError     = "SERVER_ERROR"
)

// ErrorCode 返回错误对应的错误码（服务端使用）
func ErrorCode(err error) (code string, status int) {
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		return CodePlayerNotFound, http.StatusNotFound
	case errors.Is(err, ErrInvalidPlayerID):
		return CodeInvalidPlayerID, http.StatusBadRequest
	case errors.Is(err, ErrInvalidLevel):
		return CodeInvalidLevel, http.StatusBadRequest
	case errors.Is(err, ErrSkinNotOwned):
		return CodeSkinNotOwned, http.StatusBadRequest
	default:
		return CodeServerError, http.StatusInternalServerError
	}
}
