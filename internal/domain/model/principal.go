package model

// 認証済みの呼び出し元。handlerからusecaseへ明示的に渡す
type Principal struct {
	AccountID int64
	Username  string
	Roles     []string
}

func (p Principal) HasRole(name RoleName) bool {
	for _, r := range p.Roles {
		if r == string(name) {
			return true
		}
	}
	return false
}
