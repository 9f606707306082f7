package hub

// Broadcast delivers a message to every current admin channel. Channels
// that fail to accept it are pruned from the admin set after the pass
// completes. Delivery failures are never surfaced to the caller.
func (r *Registry) Broadcast(msg any) {
	admins := r.SnapshotAdmins()

	var dead []Conn
	for _, a := range admins {
		if err := a.Send(msg); err != nil {
			dead = append(dead, a)
		}
	}

	for _, d := range dead {
		r.RemoveAdmin(d)
		if r.metrics != nil {
			r.metrics.BroadcastsPruned.Inc()
		}
	}

	if r.metrics != nil {
		r.metrics.BroadcastsSent.Add(float64(len(admins) - len(dead)))
	}
}
