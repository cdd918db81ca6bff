/*
Package bank describes the personal loan campaign dataset of bank customers
and implements its cleaning and transformation steps
*/
package bank

import (
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
)

// Normalized column names of the dataset
const (
	ID                = "id"
	Age               = "age"
	Experience        = "experience"
	Income            = "income"
	ZipCode           = "zip_code"
	Family            = "family"
	CCAvg             = "cc_avg"
	Education         = "education"
	Mortgage          = "mortgage"
	PersonalLoan      = "personal_loan"
	SecuritiesAccount = "securities_account"
	CDAccount         = "cd_account"
	Online            = "online"
	CreditCard        = "credit_card"
)

// Label is the column classifiers learn to predict
const Label = PersonalLoan

// Columns lists the fixed schema in the file order
var Columns = []string{
	ID, Age, Experience, Income, ZipCode, Family, CCAvg,
	Education, Mortgage, PersonalLoan, SecuritiesAccount, CDAccount, Online, CreditCard,
}

// Indicators are binary columns recoded to categories by Clean
var Indicators = []string{PersonalLoan, SecuritiesAccount, CDAccount, Online, CreditCard}

/*
Load reads the dataset and checks it has all columns of the schema
*/
func Load(src tables.Source) (*tables.Table, error) {
	t, err := tables.ReadCSV(src)
	if err != nil {
		return nil, err
	}
	if err = t.Has(Columns...); err != nil {
		return nil, zorros.Wrapf(err, "dataset does not match customer schema: %v", err.Error())
	}
	if t.Len() == 0 {
		return nil, zorros.Errorf("dataset has no records")
	}
	return t, nil
}

/*
Features returns names of all columns except the label
*/
func Features(t *tables.Table) []string {
	return t.Except(Label).Names()
}
