package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "posts":
		handlePosts(args)
	case "reviews":
		handleReviews(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: vecino auth <register|login|logout|who>")
		return
	}

	switch args[0] {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handlePosts(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: vecino posts <list|create>")
		return
	}

	switch args[0] {
	case "list":
		listPosts()
	case "create":
		createPost(args[1:])
	default:
		fmt.Printf("unknown posts command: %s\n", args[0])
	}
}

func handleReviews(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: vecino reviews <list>")
		return
	}

	switch args[0] {
	case "list":
		listReviews()
	default:
		fmt.Printf("unknown reviews command: %s\n", args[0])
	}
}

// Auth commands
func registerUser(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	name := fs.String("name", "", "first name")
	surname := fs.String("surname", "", "surname")
	age := fs.Int("age", 0, "age")
	username := fs.String("username", "", "public handle")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *username == "" || *password == "" {
		fmt.Println("Error: email, username, and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]any{
		"email":    *email,
		"name":     *name,
		"surname":  *surname,
		"age":      *age,
		"username": *username,
		"password": *password,
	}

	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/users/register", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 201 {
		fmt.Printf("✓ User registered: %s\n", *email)
	} else {
		fmt.Printf("✗ Registration failed: %v\n", result["error"])
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"email": *email, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/users/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *email)
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result["error"])
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Post commands
func listPosts() {
	resp, err := http.Get(getAPIURL() + "/posts")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var posts []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&posts)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBUSINESS\tLIKES\tCOMMENTS\tCONTENT")
	for _, p := range posts {
		business := ""
		if b, ok := p["businesses"].(map[string]interface{}); ok {
			business, _ = b["name"].(string)
		}
		fmt.Fprintf(w, "%v\t%s\t%v\t%v\t%v\n", p["id"], business, p["likes"], p["commentsCount"], p["content"])
	}
	w.Flush()
}

func createPost(args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	content := fs.String("content", "", "post content")

	fs.Parse(args)

	if *content == "" {
		fmt.Println("Error: content is required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"content": *content}
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+"/posts", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 201 {
		fmt.Printf("✓ Post created: %v\n", result["id"])
	} else {
		fmt.Printf("✗ Post failed: %v\n", result["error"])
	}
}

// Review commands
func listReviews() {
	resp, err := http.Get(getAPIURL() + "/reviews")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var reviews []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&reviews)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUSINESS\tRATING\tCONTENT")
	for _, r := range reviews {
		fmt.Fprintf(w, "%v\t%v\t%v\n", r["business_id"], r["rating"], r["content"])
	}
	w.Flush()
}

// Helper functions
func getAPIURL() string {
	if url := os.Getenv("VECINO_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.vecino/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.vecino", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`vecino CLI

Usage:
  vecino <command> [options]

Commands:
  auth     Account authentication (register, login, logout, who)
  posts    Post operations (list, create)
  reviews  Review operations (list)
  help     Show this help message

Environment Variables:
  VECINO_API    API endpoint (default: http://localhost:8080/api)

Examples:
  vecino auth register -email ana@example.com -name Ana -surname Ruiz -age 30 -username ana_r -password secreta1
  vecino auth login -email ana@example.com -password secreta1
  vecino posts list
`)
}
