package models

// HabitUpdate carries the fields of a partial habit update. A nil field is
// left unchanged.
type HabitUpdate struct {
	Name      *string
	Color     *Color
	Frequency *[]Weekday
}

func (u HabitUpdate) WithName(name string) HabitUpdate {
	u.Name = &name
	return u
}

func (u HabitUpdate) WithColor(c Color) HabitUpdate {
	u.Color = &c
	return u
}

func (u HabitUpdate) WithFrequency(freq []Weekday) HabitUpdate {
	f := append([]Weekday{}, freq...)
	u.Frequency = &f
	return u
}

// IsEmpty reports whether the update changes nothing.
func (u HabitUpdate) IsEmpty() bool {
	return u.Name == nil && u.Color == nil && u.Frequency == nil
}
