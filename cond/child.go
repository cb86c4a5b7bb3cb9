// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cond

type Role int

const (
	RolePlain Role = iota
	RoleThen
	RoleElse
	RoleCase
	RoleDefault
)

func (r Role) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleThen:
		return "then"
	case RoleElse:
		return "else"
	case RoleCase:
		return "case"
	case RoleDefault:
		return "default"
	}
	return "unknown"
}

// Child is a tagged child of a conditional block.  Children are values, WithBreak
// returns a modified copy.
type Child struct {
	Role    Role
	Cond    Condition // RoleCase only
	Break   bool
	Content any
}

func Plain(content any) Child {
	return Child{Role: RolePlain, Content: content}
}

func Case(c Condition, content any) Child {
	return Child{Role: RoleCase, Cond: c, Content: content}
}

func Default(content any) Child {
	return Child{Role: RoleDefault, Content: content}
}

func Tagged(role Role, content any) Child {
	return Child{Role: role, Content: content}
}

func (c Child) WithBreak() Child {
	c.Break = true
	return c
}

func (c Child) IsNull() bool {
	return c.Role == RolePlain && c.Content == nil
}

// Children flattens caller input into a descriptor list.  Child, *Child and
// []Child values are taken as descriptors, nil becomes a null descriptor, and
// anything else is plain content.
func Children(parts ...any) []Child {
	rtn := make([]Child, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case nil:
			rtn = append(rtn, Child{})
		case Child:
			rtn = append(rtn, p)
		case *Child:
			if p == nil {
				rtn = append(rtn, Child{})
				continue
			}
			rtn = append(rtn, *p)
		case []Child:
			rtn = append(rtn, p...)
		case []any:
			rtn = append(rtn, Children(p...)...)
		default:
			rtn = append(rtn, Plain(part))
		}
	}
	return rtn
}
