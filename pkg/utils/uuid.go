package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const idSize = 12

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idSize)
}

// GeneratePrefixedID gera IDs legíveis como "exp_x8Jk2LmQ0aZb"
func GeneratePrefixedID(prefix string) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}
	return prefix + "_" + id, nil
}
