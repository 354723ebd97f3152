package observability

// Multi fans a notification out to every non-nil observer, in order. It returns a
// NoOpObserver when none are given and the observer itself when only one is.
func Multi(observers ...Observer) Observer {
	list := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}

	switch len(list) {
	case 0:
		return NewNoOpObserver()
	case 1:
		return list[0]
	default:
		return list
	}
}

type multiObserver []Observer

func (m multiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}
