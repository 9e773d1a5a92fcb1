// Package gate реализует правила доступа к защищённым разделам портала.
//
// Решение принимается по строгому порядку проверок: пока личность не
// разрешена — ожидание; личности нет — возврат на публичную страницу;
// раздел требует администратора, а роль не admin — отказ; учётная запись
// не одобрена и не административная — экран ожидания одобрения; иначе доступ.
package gate

import (
	"github.com/nerdshive/membership-portal/internal/models"
)

// Decision — закрытое перечисление исходов проверки доступа.
type Decision int

const (
	// DecisionResolving — личность ещё разрешается, доступ не решён.
	DecisionResolving Decision = iota
	// DecisionRedirect — личности нет, вернуть на публичную страницу.
	DecisionRedirect
	// DecisionDenied — раздел требует администратора, роль не подходит.
	DecisionDenied
	// DecisionPendingApproval — учётная запись ожидает одобрения.
	DecisionPendingApproval
	// DecisionAllow — доступ разрешён.
	DecisionAllow
)

// String возвращает текстовое обозначение исхода.
func (d Decision) String() string {
	switch d {
	case DecisionResolving:
		return "resolving"
	case DecisionRedirect:
		return "redirect"
	case DecisionDenied:
		return "denied"
	case DecisionPendingApproval:
		return "pending_approval"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decide применяет проверки в фиксированном порядке и возвращает исход.
// resolving имеет высший приоритет; при нем никакие другие проверки
// не выполняются и перенаправления не происходит.
func Decide(identity *models.User, requireAdmin, resolving bool) Decision {
	if resolving {
		return DecisionResolving
	}
	if identity == nil {
		return DecisionRedirect
	}
	isAdmin := identity.Role == models.RoleAdmin
	if requireAdmin && !isAdmin {
		return DecisionDenied
	}
	if identity.Status != models.UserStatusApproved && !isAdmin {
		return DecisionPendingApproval
	}
	return DecisionAllow
}
