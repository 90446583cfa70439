// Command storefront is an interactive terminal client for the sweet
// shop: browse and search the catalog, manage a cart, run checkout, and
// (for admins) manage inventory. All business state lives in the remote
// backend; this process only holds the session, the cart, and the local
// order history.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-sweet-storefront/internal/app"
	"go-sweet-storefront/internal/auth"
	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/checkout"
	"go-sweet-storefront/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// terminalNavigator tracks which "screen" the user is on so that session
// invalidation can send them back to login.
type terminalNavigator struct {
	route string
}

func (n *terminalNavigator) CurrentRoute() string { return n.route }
func (n *terminalNavigator) NavigateTo(route string) {
	n.route = route
	fmt.Printf("-- session expired, back to %s --\n", route)
}

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	nav := &terminalNavigator{route: "/"}
	application, err := app.BuildApp(cfg, nav, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	repl(application, nav)
}

func repl(a *app.App, nav *terminalNavigator) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("sweet shop storefront — type 'help' for commands")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "register":
			doRegister(ctx, a, scanner, nav)
		case "login":
			doLogin(ctx, a, scanner, nav)
		case "logout":
			a.Auth.Logout()
			fmt.Println("logged out")
		case "whoami":
			if u, ok := a.Session.User(); ok {
				fmt.Printf("%s <%s> (%s)\n", u.Username, u.Email, u.Role)
			} else {
				fmt.Println("not logged in")
			}
		case "list":
			doList(ctx, a, args[1:])
		case "search":
			doSearch(ctx, a, args[1:])
		case "cart":
			doCart(ctx, a, args[1:])
		case "checkout":
			doCheckout(ctx, a, scanner)
		case "orders":
			doOrders(ctx, a)
		case "admin":
			doAdmin(ctx, a, args[1:])
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  register | login | logout | whoami
  list [category] [name|price-low|price-high|stock]
  search <query>
  cart show|add <id>|inc <id>|dec <id>|remove <id>|clear
  checkout
  orders
  admin add|update|delete|restock|upload|stats ...
  quit
`)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func doRegister(ctx context.Context, a *app.App, scanner *bufio.Scanner, nav *terminalNavigator) {
	nav.route = "/register"
	defer func() { nav.route = "/" }()

	req := auth.RegisterRequest{
		Email:     prompt(scanner, "email"),
		Firstname: prompt(scanner, "first name"),
		Lastname:  prompt(scanner, "last name"),
		Password:  prompt(scanner, "password"),
	}
	user, err := a.Auth.Register(ctx, req)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("welcome, %s\n", user.Username)
}

func doLogin(ctx context.Context, a *app.App, scanner *bufio.Scanner, nav *terminalNavigator) {
	nav.route = "/login"
	defer func() { nav.route = "/" }()

	user, err := a.Auth.Login(ctx, auth.LoginRequest{
		Email:    prompt(scanner, "email"),
		Password: prompt(scanner, "password"),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("welcome back, %s\n", user.Username)
}

func doList(ctx context.Context, a *app.App, args []string) {
	sweets, err := a.Catalog.List(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(args) > 0 {
		sweets = catalog.FilterByCategory(sweets, args[0])
	}
	sortKey := catalog.SortByName
	if len(args) > 1 {
		sortKey = args[1]
	}
	printSweets(catalog.SortSweets(sweets, sortKey))
}

func doSearch(ctx context.Context, a *app.App, args []string) {
	if len(args) == 0 {
		fmt.Println("usage: search <query>")
		return
	}
	sweets, err := a.Catalog.Search(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	printSweets(sweets)
}

func printSweets(sweets []catalog.Sweet) {
	if len(sweets) == 0 {
		fmt.Println("no sweets found")
		return
	}
	for _, s := range sweets {
		stock := strconv.Itoa(s.Quantity)
		if s.Quantity == 0 {
			stock = "out of stock"
		}
		fmt.Printf("  %-36s  %-20s  %-12s ₹%-8s %s\n",
			s.ID, s.Name, s.Category, s.Price.StringFixed(2), stock)
	}
}

func doCart(ctx context.Context, a *app.App, args []string) {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		lines := a.Cart.Lines()
		if len(lines) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, l := range lines {
			fmt.Printf("  %-20s x%-3d ₹%s\n", l.Sweet.Name, l.Quantity, l.Subtotal().StringFixed(2))
		}
		fmt.Printf("total: ₹%s (%d items)\n", a.Cart.TotalPrice().StringFixed(2), a.Cart.TotalItems())
	case "add", "inc", "dec", "remove":
		if len(args) < 2 {
			fmt.Printf("usage: cart %s <id>\n", args[0])
			return
		}
		mutateCart(ctx, a, args[0], args[1])
	case "clear":
		a.Cart.Clear()
		fmt.Println("cart cleared")
	default:
		fmt.Printf("unknown cart command %q\n", args[0])
	}
}

func mutateCart(ctx context.Context, a *app.App, op, id string) {
	var err error
	switch op {
	case "add":
		var sweet catalog.Sweet
		sweet, err = findSweet(ctx, a, id)
		if err == nil {
			err = a.Cart.AddItem(sweet)
		}
	case "inc":
		err = a.Cart.UpdateQuantity(id, 1)
	case "dec":
		err = a.Cart.UpdateQuantity(id, -1)
	case "remove":
		a.Cart.RemoveItem(id)
	}
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("cart: %d items, ₹%s\n", a.Cart.TotalItems(), a.Cart.TotalPrice().StringFixed(2))
}

func findSweet(ctx context.Context, a *app.App, id string) (catalog.Sweet, error) {
	sweets, err := a.Catalog.List(ctx)
	if err != nil {
		return catalog.Sweet{}, err
	}
	for _, s := range sweets {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Sweet{}, catalog.ErrInvalidSweetID
}

func doCheckout(ctx context.Context, a *app.App, scanner *bufio.Scanner) {
	if a.Cart.IsEmpty() {
		fmt.Println("your cart is empty")
		return
	}

	done := make(chan struct{})
	flow := checkout.NewFlow(checkout.Deps{
		Cart:      a.Cart,
		Payments:  a.Payments,
		Gateway:   a.Gateway,
		Inventory: a.Catalog,
		Log:       a.OrderLog,
		Logger:    a.Logger,
		OnSuccess: func() { close(done) },
	})

	for flow.State() == checkout.StateCollectingDetails {
		details := checkout.Details{
			Name:    prompt(scanner, "full name"),
			Email:   prompt(scanner, "email"),
			Phone:   prompt(scanner, "phone"),
			Address: prompt(scanner, "address"),
			City:    prompt(scanner, "city"),
			Pincode: prompt(scanner, "pincode"),
			Notes:   prompt(scanner, "notes (optional)"),
		}
		if err := flow.SubmitDetails(details); err != nil {
			fmt.Println("error:", err)
			continue
		}
	}

	order, err := flow.Pay(ctx)
	if err != nil {
		fmt.Println("payment failed:", err)
		fmt.Println("checkout remains open — run 'checkout' to retry")
		return
	}

	fmt.Printf("order placed! payment %s, ₹%s\n", order.PaymentID, order.Amount.StringFixed(2))
	<-done
}

func doOrders(ctx context.Context, a *app.App) {
	orders, err := a.OrderLog.List(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return
	}
	for _, o := range orders {
		fmt.Printf("  %s  %-18s ₹%-9s %d items  %s\n",
			o.Timestamp.Format("2006-01-02 15:04"), o.OrderID,
			o.Amount.StringFixed(2), len(o.Items), o.Status)
	}
}

func doAdmin(ctx context.Context, a *app.App, args []string) {
	if !a.Session.IsAdmin() {
		fmt.Println("admin commands need an ADMIN session")
		return
	}
	if len(args) == 0 {
		fmt.Println("usage: admin add|update|delete|restock|upload|stats ...")
		return
	}

	var err error
	switch args[0] {
	case "add":
		if len(args) < 5 {
			fmt.Println("usage: admin add <name> <category> <price> <qty>")
			return
		}
		err = adminCreate(ctx, a, args[1], args[2], args[3], args[4])
	case "update":
		if len(args) < 6 {
			fmt.Println("usage: admin update <id> <name> <category> <price> <qty>")
			return
		}
		err = adminUpdate(ctx, a, args[1], args[2], args[3], args[4], args[5])
	case "stats":
		sweets, listErr := a.Catalog.List(ctx)
		if listErr != nil {
			err = listErr
			break
		}
		stats := catalog.ComputeStats(sweets)
		fmt.Printf("sweets: %d, stock: %d, categories: %d, value: ₹%s\n",
			stats.TotalSweets, stats.TotalStock, stats.Categories,
			stats.InventoryValue.StringFixed(2))
		if len(stats.OutOfStock) > 0 {
			fmt.Println("out of stock:", strings.Join(stats.OutOfStock, ", "))
		}
		if len(stats.LowStock) > 0 {
			fmt.Println("low stock:", strings.Join(stats.LowStock, ", "))
		}
	case "delete":
		if len(args) < 2 {
			fmt.Println("usage: admin delete <id>")
			return
		}
		err = a.Catalog.Delete(ctx, args[1])
	case "restock":
		if len(args) < 3 {
			fmt.Println("usage: admin restock <id> <qty>")
			return
		}
		var qty int
		qty, err = strconv.Atoi(args[2])
		if err == nil {
			err = a.Catalog.Restock(ctx, args[1], qty)
		}
	case "upload":
		if len(args) < 3 {
			fmt.Println("usage: admin upload <id> <file>")
			return
		}
		var f *os.File
		f, err = os.Open(args[2])
		if err == nil {
			defer f.Close()
			err = a.Catalog.UploadImage(ctx, args[1], f.Name(), f)
		}
	default:
		fmt.Printf("unknown admin command %q\n", args[0])
		return
	}

	if err != nil {
		fmt.Println("error:", err)
	}
}

func adminCreate(ctx context.Context, a *app.App, name, category, price, qty string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		return err
	}
	sweet, err := a.Catalog.Create(ctx, catalog.CreateSweetRequest{
		Name:     name,
		Category: category,
		Price:    p,
		Quantity: quantity,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s (%s)\n", sweet.Name, sweet.ID)
	return nil
}

func adminUpdate(ctx context.Context, a *app.App, id, name, category, price, qty string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		return err
	}
	sweet, err := a.Catalog.Update(ctx, id, catalog.UpdateSweetRequest{
		Name:     name,
		Category: category,
		Price:    p,
		Quantity: quantity,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated %s\n", sweet.Name)
	return nil
}
