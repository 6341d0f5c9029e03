package entities

type ValidatedInternship struct {
	*Internship
}

func NewValidatedInternship(internship *Internship) (*ValidatedInternship, error) {
	if err := internship.validate(); err != nil {
		return nil, err
	}

	return &ValidatedInternship{Internship: internship}, nil
}

func (vi *ValidatedInternship) GetInternship() *Internship {
	return vi.Internship
}
