// Command sanctuaryctl is a small operator tool for the sanctuary backend.
// It talks to the same REST API the console consumes, which makes it handy
// for seeding data and for checking what the backend holds without going
// through the browser.
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
	case "animals":
		handleAnimals(args)
	case "habitats":
		handleHabitats(args)
	case "caretakers":
		handleCaretakers(args)
	case "stats":
		showStats()
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
		fmt.Println("Usage: sanctuaryctl auth <register|login|logout|who>")
		return
	}

	switch args[0] {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	case "logout":
		os.Remove(tokenFile())
		fmt.Println("✓ Logged out")
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func registerUser(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", "MANAGER", "role (MANAGER or CARETAKER)")

	fs.Parse(args)

	if *username == "" || *email == "" || *password == "" {
		fmt.Println("Error: username, email, and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{
		"username": *username,
		"email":    *email,
		"password": *password,
		"role":     *role,
	}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/register", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode < 300 {
		fmt.Printf("✓ Registered: %s (%s)\n", *username, *role)
		if token, ok := result["token"].(string); ok {
			saveToken(token)
		}
	} else {
		fmt.Printf("✗ Registration failed: %v\n", result)
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Println("Error: username and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"username": *username, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/login", "application/json", bytes.NewReader(data))
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
			fmt.Printf("✓ Logged in as: %s (%v)\n", *username, result["role"])
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	show := token
	if len(show) > 20 {
		show = show[:20]
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", show)
}

func handleAnimals(args []string) {
	if len(args) < 1 || args[0] == "list" {
		listAnimals()
		return
	}
	fmt.Printf("unknown animals command: %s\n", args[0])
}

func listAnimals() {
	var animals []map[string]interface{}
	if !getJSON("/animals", &animals) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPECIES\tHABITAT\tHEALTH\tCARETAKER")
	for _, a := range animals {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			a["id"], a["name"], a["species"], a["habitatId"], a["healthStatus"], a["caretakerId"])
	}
	w.Flush()
}

func handleHabitats(args []string) {
	if len(args) < 1 || args[0] == "list" {
		listHabitats()
		return
	}
	fmt.Printf("unknown habitats command: %s\n", args[0])
}

func listHabitats() {
	var habitats []map[string]interface{}
	if !getJSON("/habitats", &habitats) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCLIMATE\tAREA")
	for _, h := range habitats {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			h["id"], h["name"], h["type"], h["climate"], h["area"])
	}
	w.Flush()
}

func handleCaretakers(args []string) {
	if len(args) < 1 || args[0] == "list" {
		listCaretakers()
		return
	}
	fmt.Printf("unknown caretakers command: %s\n", args[0])
}

func listCaretakers() {
	var caretakers []map[string]interface{}
	if !getJSON("/caretakers", &caretakers) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSPECIALIZATION\tUSER")
	for _, c := range caretakers {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			c["id"], c["name"], c["email"], c["specialization"], c["userId"])
	}
	w.Flush()
}

func showStats() {
	var stats map[string]interface{}
	if !getJSON("/home/statistics", &stats) {
		return
	}
	fmt.Printf("Animals:    %v\n", stats["totalAnimals"])
	fmt.Printf("Habitats:   %v\n", stats["totalHabitats"])
	fmt.Printf("Caretakers: %v\n", stats["totalCaretakers"])
}

// Helper functions
func getJSON(path string, out interface{}) bool {
	req, _ := http.NewRequest("GET", getAPIURL()+path, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		fmt.Printf("✗ Request failed with status %d\n", resp.StatusCode)
		return false
	}
	json.NewDecoder(resp.Body).Decode(out)
	return true
}

func getAPIURL() string {
	if url := os.Getenv("SANCTUARY_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.sanctuaryctl/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.sanctuaryctl", 0700)
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
	fmt.Print(`sanctuaryctl - operator tool for the sanctuary backend

Usage:
  sanctuaryctl <command> [options]

Commands:
  auth        Authentication (register, login, logout, who)
  animals     Animal records (list)
  habitats    Habitat records (list)
  caretakers  Caretaker records (list)
  stats       Sanctuary-wide totals
  help        Show this help message

Environment Variables:
  SANCTUARY_API    API endpoint (default: http://localhost:8080/api)

Examples:
  sanctuaryctl auth login -username admin -password secret
  sanctuaryctl animals list
  sanctuaryctl stats
`)
}
