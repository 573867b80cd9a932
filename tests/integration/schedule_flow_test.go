package integration

import (
	"net/http"
	"testing"
)

func TestScheduleFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "planner@example.com", "password123")

	accountID := app.createAccount(t, token, "Checking")
	scenarioID := app.createScenario(t, token, "Baseline")

	app.createTransaction(t, token, accountID, scenarioID,
		"Salary", "3000.00", "FREQ=MONTHLY;BYMONTHDAY=25", "2024-01-01")
	app.createTransaction(t, token, accountID, scenarioID,
		"Rent", "-1200.00", "FREQ=MONTHLY;BYMONTHDAY=1", "2024-01-01")

	// With income in range, the quarter is split into pay periods.
	rec := app.request("GET", "/api/v1/transactions?start_date=2024-01-01&end_date=2024-03-31", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	payPeriods, ok := result["pay_periods"].([]interface{})
	if !ok {
		t.Fatalf("expected pay_periods in response, got: %v", result)
	}
	if len(payPeriods) != 3 {
		t.Fatalf("expected 3 pay periods, got %d", len(payPeriods))
	}

	first := payPeriods[0].(map[string]interface{})
	incomes := first["incomes"].(map[string]interface{})["occurrences"].([]interface{})
	if len(incomes) != 1 {
		t.Errorf("expected 1 income in the first pay period, got %d", len(incomes))
	}
}

func TestMonthScheduleFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "saver@example.com", "password123")

	accountID := app.createAccount(t, token, "Checking")
	scenarioID := app.createScenario(t, token, "Baseline")

	app.createTransaction(t, token, accountID, scenarioID,
		"Rent", "-1200.00", "FREQ=MONTHLY;BYMONTHDAY=1", "2024-01-01")
	app.createTransaction(t, token, accountID, scenarioID,
		"Power", "-80.00", "FREQ=MONTHLY;BYMONTHDAY=5", "2024-01-01")

	// Without income the same range partitions into calendar months.
	rec := app.request("GET", "/api/v1/transactions?start_date=2024-01-01&end_date=2024-03-31", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	months, ok := result["months"].([]interface{})
	if !ok {
		t.Fatalf("expected months in response, got: %v", result)
	}
	if len(months) != 3 {
		t.Fatalf("expected 3 month periods, got %d", len(months))
	}

	// Cross-year month queries are rejected.
	rec = app.request("GET", "/api/v1/transactions?start_date=2023-12-01&end_date=2024-01-31", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for cross-year query, got %d", rec.Code)
	}
}

func TestTagFilterFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "tagger@example.com", "password123")

	accountID := app.createAccount(t, token, "Checking")
	scenarioID := app.createScenario(t, token, "Baseline")

	rentID := app.createTransaction(t, token, accountID, scenarioID,
		"Rent", "-1200.00", "FREQ=MONTHLY;BYMONTHDAY=1", "2024-01-01")
	app.createTransaction(t, token, accountID, scenarioID,
		"Gym", "-50.00", "FREQ=MONTHLY;BYMONTHDAY=10", "2024-01-01")

	rec := app.request("POST", "/api/v1/transactions/"+rentID+"/tags", `{"name":"housing"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("tagging failed: %d %s", rec.Code, rec.Body.String())
	}

	// Flat tag query returns only the tagged template.
	rec = app.request("GET", "/api/v1/transactions?tags=housing", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	planned := result["transactions"].(map[string]interface{})["transactions"].([]interface{})
	if len(planned) != 1 {
		t.Fatalf("expected 1 tagged template, got %d", len(planned))
	}
	tx := planned[0].(map[string]interface{})
	if tx["name"] != "Rent" {
		t.Errorf("expected Rent, got %v", tx["name"])
	}

	// Distinct tag names are listed.
	rec = app.request("GET", "/api/v1/tags", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("tag listing failed: %d %s", rec.Code, rec.Body.String())
	}
	tags := parseJSON(t, rec)["tags"].([]interface{})
	if len(tags) != 1 || tags[0] != "housing" {
		t.Errorf("expected [housing], got %v", tags)
	}
}

func TestScenarioCloneFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "cloner@example.com", "password123")

	accountID := app.createAccount(t, token, "Checking")
	baseID := app.createScenario(t, token, "Baseline")
	app.createTransaction(t, token, accountID, baseID,
		"Rent", "-1200.00", "FREQ=MONTHLY;BYMONTHDAY=1", "2024-01-01")

	// Clone the baseline and drop the rent in the clone only.
	rec := app.request("POST", "/api/v1/scenarios",
		`{"name":"What If","clone_from_id":"`+baseID+`"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("clone failed: %d %s", rec.Code, rec.Body.String())
	}
	cloneID := parseJSON(t, rec)["scenario"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/transactions?scenario_id="+cloneID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed: %d %s", rec.Code, rec.Body.String())
	}
	planned := parseJSON(t, rec)["transactions"].(map[string]interface{})["transactions"].([]interface{})
	if len(planned) != 1 {
		t.Fatalf("expected cloned scenario to carry 1 template, got %d", len(planned))
	}

	clonedID := planned[0].(map[string]interface{})["id"].(string)
	rec = app.request("DELETE", "/api/v1/transactions/"+clonedID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// The clone is now empty; the baseline still has its template.
	rec = app.request("GET", "/api/v1/transactions?scenario_id="+cloneID, "", token)
	planned = parseJSON(t, rec)["transactions"].(map[string]interface{})["transactions"].([]interface{})
	if len(planned) != 0 {
		t.Errorf("expected empty clone after delete, got %d templates", len(planned))
	}

	rec = app.request("GET", "/api/v1/transactions?scenario_id="+baseID, "", token)
	planned = parseJSON(t, rec)["transactions"].(map[string]interface{})["transactions"].([]interface{})
	if len(planned) != 1 {
		t.Errorf("expected baseline untouched, got %d templates", len(planned))
	}
}
