package main

import (
	"flag"
	"fmt"

	"eduface/app/config"
	"eduface/app/database"
	"eduface/app/models"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email <email> -password <password> [-first-name ...] [-last-name ...]")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}

	if err := database.InitSchema(db); err != nil {
		fmt.Printf("Error initializing schema: %v\n", err)
		return
	}

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user); err != nil {
		if err == database.ErrDuplicateCode {
			fmt.Printf("A user with email %s already exists\n", user.Email)
			return
		}
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
