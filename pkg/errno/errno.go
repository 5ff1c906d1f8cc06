package errno

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 错误码与 HTTP 状态码保持一致，响应体中的 success 由 code < 400 推导
const (
	SuccessCode             = 200
	InvalidArgumentCode     = 400
	AuthorizationFailedCode = 401
	ForbiddenCode           = 403
	NotFoundCode            = 404
	ConflictCode            = 409
	TooManyRequestsCode     = 429
	DependencyFailureCode   = 424
	ServiceErrCode          = 500
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is 只比较错误码，WithMessage 之后依然可以用 errors.Is 判断类别
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	InvalidArgumentErr     = NewErrNo(InvalidArgumentCode, "Invalid argument")
	ErrBind                = NewErrNo(InvalidArgumentCode, "Error occurred while binding the request body to the struct")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Authorization failed")
	ForbiddenErr           = NewErrNo(ForbiddenCode, "You are not allowed to modify this resource")
	NotFoundErr            = NewErrNo(NotFoundCode, "Resource not found")
	ConflictErr            = NewErrNo(ConflictCode, "Resource already exists")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsCode, "Too many requests")
	DependencyFailureErr   = NewErrNo(DependencyFailureCode, "Dependent update failed")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	InternalErr            = NewErrNo(ServiceErrCode, "Something went wrong, please try again later")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundErr
	}
	// 内部错误细节只写日志，不返回给调用方
	return InternalErr
}

// IsSuccess 对应响应体中的 success 字段
func IsSuccess(code int64) bool {
	return code < 400
}
