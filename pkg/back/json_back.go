package back

import (
	"errors"
	"net/http"

	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Result 统一返回入口
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		Success(c, data)
		return
	}

	// 判断是否为自定义错误，允许被 %w 包装
	var e *xerr.CodeError
	if errors.As(err, &e) {
		ErrorWithData(c, e.Code, e.Message, data)
		return
	}

	// 默认为系统错误，结构化结果照样带回
	ErrorWithData(c, xerr.ErrServerError.Code, xerr.ErrServerError.Message, data)
}

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    xerr.OK,
		Message: "Success",
		Data:    data,
	})
}

// Error 错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData 错误返回并附带结构化结果（例如冷却中的下次可用时间）
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}
