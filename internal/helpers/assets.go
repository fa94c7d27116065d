package helpers

func (r *Registry) image(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return text(r.images[StringForm(inv.Context)]), nil
}

func (r *Registry) resource(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return text(string(r.resources[StringForm(inv.Context)])), nil
}

func (r *Registry) safe(inv *Invocation) (Result, error) {
	if inv.Context == nil {
		return text(""), nil
	}
	return safeText(StringForm(inv.Context)), nil
}
