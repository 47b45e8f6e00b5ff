package services

// Notifier is told about every successful write that changes what a
// company's pages show.
type Notifier interface {
	BroadcastRefresh(companyID, reason string)
}

type nopNotifier struct{}

func (nopNotifier) BroadcastRefresh(companyID, reason string) {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

type multiNotifier []Notifier

func (m multiNotifier) BroadcastRefresh(companyID, reason string) {
	for _, n := range m {
		n.BroadcastRefresh(companyID, reason)
	}
}

// Notifiers fans events out to every non-nil notifier.
func Notifiers(notifiers ...Notifier) Notifier {
	var m multiNotifier

	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}

	switch len(m) {
	case 0:
		return nopNotifier{}
	case 1:
		return m[0]
	default:
		return m
	}
}
