package dto

type GymOutput struct {
	ID   string
	Name string
}

type CreateInput struct {
	Name     string
	Location string
}
