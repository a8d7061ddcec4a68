package repl

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/usecase"
	"productsmanager/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const descriptionWidth = 48

func (c *Console) register(ctx context.Context) error {
	username, err := c.readLine("Username: ")
	if err != nil {
		return err
	}
	pw, err := c.password("Password")
	if err != nil {
		return err
	}
	confirm, err := c.password("Confirm password")
	if err != nil {
		return err
	}

	output, err := c.auth.Register(ctx, usecase.RegisterInput{
		Username:        username,
		Password:        pw,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}

	c.okColor.Fprintf(c.out, "Registered %s. You can now log in.\n", output.User.Username)

	return nil
}

func (c *Console) login(ctx context.Context) error {
	username, err := c.readLine("Username: ")
	if err != nil {
		return err
	}
	pw, err := c.password("Password")
	if err != nil {
		return err
	}

	output, err := c.auth.Login(ctx, usecase.LoginInput{Username: username, Password: pw})
	if err != nil {
		return err
	}

	c.okColor.Fprintf(c.out, "Logged in as %s.\n", output.User.Username)
	c.println("Session token valid for " + util.FormatDuration(output.ExpiresIn) + ".")

	return nil
}

func (c *Console) logout(ctx context.Context) error {
	if _, ok := c.auth.CurrentUser(ctx); !ok {
		c.println("Not logged in.")

		return nil
	}

	confirmed, err := c.confirm("Log out?")
	if err != nil {
		return err
	}
	if !confirmed {
		c.println("Cancelled.")

		return nil
	}

	c.auth.Logout(ctx)
	c.okColor.Fprintln(c.out, "Logged out.")

	return nil
}

func (c *Console) whoami(ctx context.Context) {
	user, ok := c.auth.CurrentUser(ctx)
	if !ok {
		c.println("Not logged in.")

		return
	}

	c.println(user.Username)
}

func (c *Console) add(ctx context.Context) error {
	input, err := c.productForm(nil)
	if err != nil {
		return err
	}

	product, err := c.catalog.AddProduct(ctx, input)
	if err != nil {
		return err
	}

	c.okColor.Fprintf(c.out, "Added %s (%s).\n", product.Name, product.ID)

	return nil
}

func (c *Console) update(ctx context.Context, args []string) error {
	id, ok := c.productID("update", args)
	if !ok {
		return nil
	}
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	current, err := c.findProduct(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domainerrors.ErrProductNotFound
	}

	input, err := c.productForm(current)
	if err != nil {
		return err
	}

	product, err := c.catalog.UpdateProduct(ctx, id, input)
	if err != nil {
		return err
	}

	c.okColor.Fprintf(c.out, "Updated %s.\n", product.Name)

	return nil
}

func (c *Console) delete(ctx context.Context, args []string) error {
	id, ok := c.productID("delete", args)
	if !ok {
		return nil
	}
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	question := fmt.Sprintf("Delete product %s?", id)
	if current, err := c.findProduct(ctx, id); err == nil && current != nil {
		question = fmt.Sprintf("Delete %q?", current.Name)
	}

	confirmed, err := c.confirm(question)
	if err != nil {
		return err
	}
	if !confirmed {
		c.println("Cancelled.")

		return nil
	}

	if err := c.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}

	c.okColor.Fprintln(c.out, "Deleted.")

	return nil
}

func (c *Console) list(ctx context.Context, query string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	products, err := c.catalog.ListProducts(ctx, usecase.ListProductsInput{Query: query})
	if err != nil {
		return err
	}

	if len(products) == 0 {
		c.println("No products.")

		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, util.FormatPrice(p.Price), util.Truncate(p.Description, descriptionWidth))
	}

	return errors.WithStack(w.Flush())
}

func (c *Console) export(ctx context.Context, args []string) error {
	var input usecase.ExportProductsInput
	if len(args) > 0 {
		input.Key = args[0]
	}

	output, err := c.catalog.ExportProducts(ctx, input)
	if err != nil {
		return err
	}

	c.okColor.Fprintf(c.out, "Exported %d products to %s.\n", output.Count, output.Location)

	return nil
}

func (c *Console) requireSession(ctx context.Context) error {
	if _, ok := c.auth.CurrentUser(ctx); !ok {
		return domainerrors.ErrNotLoggedIn
	}

	return nil
}

// productID parses the single id argument, printing usage when it is missing or malformed.
func (c *Console) productID(cmd string, args []string) (uuid.UUID, bool) {
	if len(args) != 1 {
		c.println("usage: " + cmd + " <id>")

		return uuid.Nil, false
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		c.errColor.Fprintf(c.out, "invalid product id: %s\n", args[0])

		return uuid.Nil, false
	}

	return id, true
}

// findProduct looks id up among the session owner's products. It returns
// nil when the product is missing or owned by someone else.
func (c *Console) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	products, err := c.catalog.ListForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, nil
}

// productForm prompts for every product field, offering current values as defaults.
func (c *Console) productForm(current *entity.Product) (usecase.ProductInput, error) {
	var name, price, description string
	if current != nil {
		name = current.Name
		price = strconv.FormatFloat(current.Price, 'f', -1, 64)
		description = current.Description
	}

	var err error
	if name, err = c.field("Name", name); err != nil {
		return usecase.ProductInput{}, err
	}
	if price, err = c.field("Price", price); err != nil {
		return usecase.ProductInput{}, err
	}
	if description, err = c.field("Description", description); err != nil {
		return usecase.ProductInput{}, err
	}

	return usecase.ProductInput{Name: name, Price: price, Description: description}, nil
}
