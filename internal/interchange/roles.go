package interchange

// InferRoles populates the semantically-named view over a command's args
// and modifiers, per spec.md §4.5. Inference is heuristic and
// command-name-driven: names outside the table below get no roles at all,
// and an empty result should be treated by the caller as "elide this
// field" rather than "assign an empty map" (see fromCoreGenericCommand).
//
// Inference is pure: the same (name, args, modifiers, target) always
// produces the same role map, and it is idempotent to re-run.
func InferRoles(cmd *Command) map[string]Node {
	roles := map[string]Node{}
	arg := func(i int) Node {
		if i < len(cmd.Args) {
			return cmd.Args[i]
		}
		return nil
	}
	mod := func(name string) Node {
		if cmd.Modifiers == nil {
			return nil
		}
		return cmd.Modifiers[name]
	}
	set := func(role string, n Node) {
		if n != nil {
			roles[role] = n
		}
	}

	switch cmd.Name {
	case "set":
		set(RoleDestination, arg(0))
		if v := mod("to"); v != nil {
			set(RolePatient, v)
		} else {
			set(RolePatient, arg(1))
		}
	case "put":
		set(RolePatient, arg(0))
		switch {
		case mod("into") != nil:
			set(RoleDestination, mod("into"))
			set(RoleMethod, &Literal{Value: "into"})
		case mod("before") != nil:
			set(RoleDestination, mod("before"))
			set(RoleMethod, &Literal{Value: "before"})
		case mod("after") != nil:
			set(RoleDestination, mod("after"))
			set(RoleMethod, &Literal{Value: "after"})
		default:
			set(RoleDestination, cmd.Target)
			if p := mod("position"); p != nil {
				if lit, ok := p.(*Literal); ok {
					set(RoleMethod, &Literal{Value: lit.Value})
				}
			}
		}
	case "increment", "decrement":
		set(RoleDestination, arg(0))
		if v := mod("by"); v != nil {
			set(RoleQuantity, v)
		} else {
			set(RoleQuantity, arg(1))
		}
	case "fetch":
		set(RoleSource, arg(0))
		if v := mod("as"); v != nil {
			if lit, ok := v.(*Literal); ok {
				if s, ok := lit.Value.(string); ok {
					set(RoleResponseType, &Identifier{Value: s, Name: s})
					break
				}
			}
			set(RoleResponseType, v)
		}
	case "wait", "settle":
		set(RoleDuration, arg(0))
	case "toggle", "add":
		set(RolePatient, arg(0))
		set(RoleDestination, cmd.Target)
	case "remove":
		set(RolePatient, arg(0))
		set(RoleSource, cmd.Target)
	case "send", "trigger":
		set(RolePatient, arg(0))
		set(RoleDestination, cmd.Target)
	}

	return roles
}
