package main

import (
	"fmt"
	"os"
	"strings"

	"yatube/service"
)

// CliVersion is the version reported by the version command.
const CliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line to a subcommand.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
	case "version":
		fmt.Printf("yatube version %s\n", CliVersion)
	case "serve":
		exit(service.RunAppServer(args))
	case "db":
		exit(service.HandleDBCommand(args))
	case "user":
		exit(service.HandleUserCommand(args))
	case "group":
		exit(service.HandleGroupCommand(args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: yatube <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [-a addr] [-c config.yaml] [-storage badger|postgres] [-media badger|s3]
                                 Run the blog.
  db init|clean|backup|restore <file> [-badger-path dir]
                                 Manage the Badger database.
  user create -username <name> -password <password>
                                 Create an account.
  group create -title <title> -slug <slug> [-description <text>]
                                 Create a group.
Run "yatube serve -h" to list every server flag.
`
	fmt.Println(helpText)
}
