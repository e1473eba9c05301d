package e2e

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"cadastro/internal/form"
	"cadastro/internal/postal"
	dErrors "cadastro/pkg/domain-errors"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background steps
	ctx.Step(`^the postal service knows these addresses:$`, tc.serviceKnows)
	ctx.Step(`^the postal service fails for "([^"]*)" with status (\d+)$`, tc.serviceFails)
	ctx.Step(`^the postal service is unreachable$`, tc.serviceUnreachable)
	ctx.Step(`^the postal service answers after (\d+)ms$`, tc.serviceDelay)

	// Page steps
	ctx.Step(`^the registration form is open$`, tc.formIsOpen)
	ctx.Step(`^the registration form is open with lookup on every keystroke$`, tc.formIsOpenOnKeystroke)
	ctx.Step(`^the page has only the fields "([^"]*)"$`, tc.pageHasOnly)
	ctx.Step(`^the field "([^"]*)" holds "([^"]*)"$`, tc.fieldHolds)
	ctx.Step(`^I type "([^"]*)" into "([^"]*)"$`, tc.typeInto)
	ctx.Step(`^I type "([^"]*)" into "([^"]*)" one key at a time$`, tc.typeKeys)
	ctx.Step(`^I leave the "([^"]*)" field$`, tc.leaveField)
	ctx.Step(`^pending lookups finish$`, tc.pendingLookupsFinish)

	// Assertion steps
	ctx.Step(`^the field "([^"]*)" should show "([^"]*)"$`, tc.fieldShouldShow)
	ctx.Step(`^the address fields should be:$`, tc.addressFieldsShouldBe)
	ctx.Step(`^the postal service should have received (\d+) lookups?$`, tc.serviceReceived)
	ctx.Step(`^the last lookup outcome should be "([^"]*)"$`, tc.lastOutcomeShouldBe)
	ctx.Step(`^the form should be valid$`, tc.formShouldBeValid)
	ctx.Step(`^the form should be invalid on "([^"]*)"$`, tc.formShouldBeInvalidOn)
}

func (tc *TestContext) serviceKnows(ctx context.Context, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("address table needs a header and at least one row")
	}
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		var a postal.Address
		for i, cell := range row.Cells {
			switch header[i].Value {
			case "cep":
				a.PostalCode = cell.Value
			case "logradouro":
				a.Street = cell.Value
			case "bairro":
				a.Neighborhood = cell.Value
			case "cidade":
				a.City = cell.Value
			case "uf":
				a.State = cell.Value
			default:
				return fmt.Errorf("unknown column %q", header[i].Value)
			}
		}
		tc.Service.Add(a)
	}
	return nil
}

func (tc *TestContext) serviceFails(ctx context.Context, code string, status int) error {
	tc.Service.FailWith(code, status)
	return nil
}

func (tc *TestContext) serviceUnreachable(ctx context.Context) error {
	tc.Server.Close()
	return nil
}

func (tc *TestContext) serviceDelay(ctx context.Context, ms int) error {
	tc.Service.SetDelay(time.Duration(ms) * time.Millisecond)
	return nil
}

func (tc *TestContext) formIsOpen(ctx context.Context) error {
	return tc.initForm()
}

func (tc *TestContext) formIsOpenOnKeystroke(ctx context.Context) error {
	return tc.initForm(form.WithLookupOnKeystroke())
}

func (tc *TestContext) pageHasOnly(ctx context.Context, names string) error {
	var ids []form.FieldID
	for _, name := range splitList(names) {
		ids = append(ids, fieldID(name))
	}
	tc.Page = newPage(ids...)
	return nil
}

func (tc *TestContext) fieldHolds(ctx context.Context, name, value string) error {
	if !tc.Page.SetValue(fieldID(name), value) {
		return fmt.Errorf("no field %s on page", fieldID(name))
	}
	return nil
}

func (tc *TestContext) typeInto(ctx context.Context, text, name string) error {
	return tc.Page.Type(ctx, fieldID(name), text)
}

func (tc *TestContext) typeKeys(ctx context.Context, text, name string) error {
	for _, r := range text {
		current, err := tc.value(name)
		if err != nil {
			return err
		}
		if err := tc.Page.Type(ctx, fieldID(name), current+string(r)); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TestContext) leaveField(ctx context.Context, name string) error {
	return tc.Page.Blur(ctx, fieldID(name))
}

func (tc *TestContext) pendingLookupsFinish(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return tc.wait(ctx)
}

func (tc *TestContext) fieldShouldShow(ctx context.Context, name, want string) error {
	got, err := tc.value(name)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("field %s shows %q, want %q", name, got, want)
	}
	return nil
}

func (tc *TestContext) addressFieldsShouldBe(ctx context.Context, table *godog.Table) error {
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected rows of field | value")
		}
		if err := tc.fieldShouldShow(ctx, row.Cells[0].Value, row.Cells[1].Value); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TestContext) serviceReceived(ctx context.Context, want int) error {
	if got := tc.Service.Requests(); got != want {
		return fmt.Errorf("postal service received %d lookups, want %d", got, want)
	}
	return nil
}

func (tc *TestContext) lastOutcomeShouldBe(ctx context.Context, want string) error {
	res, err := tc.lastResult()
	if err != nil {
		return err
	}
	if string(res.Outcome) != want {
		return fmt.Errorf("last lookup outcome %q, want %q (err: %v)", res.Outcome, want, res.Err)
	}
	return nil
}

func (tc *TestContext) formShouldBeValid(ctx context.Context) error {
	return tc.Form.Submission().Validate()
}

func (tc *TestContext) formShouldBeInvalidOn(ctx context.Context, field string) error {
	err := tc.Form.Submission().Validate()
	if err == nil {
		return fmt.Errorf("form validated, want a failure on %s", field)
	}
	if got := dErrors.FieldOf(err); got != field {
		return fmt.Errorf("form failed on %q, want %q: %v", got, field, err)
	}
	return nil
}
