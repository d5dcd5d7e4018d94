package mode

// Parent returns the mode one level up from m. UserMode is the root and has
// no parent. Both ACL kinds hang off ConfigMode regardless of the list name.
func Parent(m Mode) (Mode, bool) {
	switch m.Kind {
	case KindPrivileged:
		return User, true
	case KindConfig:
		return Privileged, true
	case KindInterface, KindVlan, KindRouterConfig, KindStdNacl, KindExtNacl:
		return Config, true
	case KindCryptoUser:
		return Privileged, true
	}
	return Mode{}, false
}

// maxDepth bounds Walkup; the deepest chain is Interface -> User.
const maxDepth = 4

// Walkup tests pred against m and then each ancestor of m in turn. It
// returns the first mode that satisfies pred, or false once the root has
// been tested.
func Walkup(m Mode, pred func(Mode) bool) (Mode, bool) {
	cur := m
	for i := 0; i <= maxDepth; i++ {
		if pred(cur) {
			return cur, true
		}
		parent, ok := Parent(cur)
		if !ok {
			return Mode{}, false
		}
		cur = parent
	}
	return Mode{}, false
}
