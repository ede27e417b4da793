// Package authz 收拢 owner-or-admin 判定，所有写操作路径复用同一个策略函数，
// 避免在每个 handler 里重新推导规则。
package authz

import (
	"careerhub/internal/database"
	"careerhub/internal/httperr"
)

// Decision 是一次授权判定的结果与依据。
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonOwner    = "caller owns the resource"
	ReasonAdmin    = "caller has admin role"
	ReasonNotOwner = "caller is neither owner nor admin"
)

// Decide 判定 caller 能否改动 ownerID 拥有的记录。
// 纯函数：除两个标量比较外不做任何查询。
func Decide(callerID uint, callerRole string, ownerID uint) Decision {
	if callerRole == database.RoleAdmin {
		return Decision{Allowed: true, Reason: ReasonAdmin}
	}
	if callerID == ownerID {
		return Decision{Allowed: true, Reason: ReasonOwner}
	}
	return Decision{Allowed: false, Reason: ReasonNotOwner}
}

// Authorize 在判定失败时返回授权错误（与认证错误是不同类别）。
// 拒绝消息不携带目标记录的任何信息，避免探测资源是否存在。
func Authorize(callerID uint, callerRole string, ownerID uint) error {
	if d := Decide(callerID, callerRole, ownerID); !d.Allowed {
		return httperr.Authorization("not authorized to modify this resource")
	}
	return nil
}
