package router

import (
	"context"
	"fmt"

	"pet-adoption-catalog/internal/domain/pets"
)

func seed(svc *pets.Service, items []pets.Pet) error {
	ctx := context.Background()
	for _, p := range items {
		if _, err := svc.Create(ctx, p); err != nil {
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return nil
}

// DemoPets es el set inicial del stand-in en modo dev.
func DemoPets() []pets.Pet {
	return []pets.Pet{
		{Name: "Firulais", Species: pets.SpeciesDog, Gender: pets.GenderMale, Age: 3, Description: "Juguetón y cariñoso."},
		{Name: "Michi", Species: pets.SpeciesCat, Gender: pets.GenderFemale, Age: 0.5, Description: "Le encanta dormir al sol."},
		{Name: "Rocky", Species: pets.SpeciesDog, Gender: pets.GenderMale, Age: 9},
		{Name: "Luna", Species: pets.SpeciesCat, Gender: pets.GenderFemale, Age: 2},
		{Name: "Toby", Species: pets.SpeciesDog, Gender: pets.GenderMale, Age: 0.3},
		{Name: "Nala", Species: pets.SpeciesDog, Gender: pets.GenderFemale, Age: 6},
		{Name: "Garfield", Species: pets.SpeciesCat, Gender: pets.GenderMale, Age: 12},
	}
}
