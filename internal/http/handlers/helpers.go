package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fail передаёт ошибку в централизованный middleware обработки ошибок.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// paramUUID извлекает UUID-параметр пути. Формат уже проверен
// middleware.UUIDValidator, поэтому ошибка парсинга здесь невозможна.
func paramUUID(c *gin.Context, name string) uuid.UUID {
	id, _ := uuid.Parse(c.Param(name))
	return id
}
