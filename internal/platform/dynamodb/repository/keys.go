package repository

import (
	"fmt"
)

// Single-table layout.
//
//	PK             SK         GSI1PK     GSI1SK                  GSI2PK (sparse)
//	ACCOUNT#<id>   ACCOUNT    ACCOUNT    <company>#<due>#<id>    DEBT#<debtId>
//	LEDGER#<id>    LEDGER     LEDGER     <company>#<date>#<id>   SOURCE_ACCOUNT#<accountId>
//	DEBT#<id>      DEBT       DEBT       <company>#<created>#<id>
//	CONTACT#<id>   CONTACT    CONTACT    <created>#<id>          EMAIL#<email>
//	FORMATION#<id> FORMATION  FORMATION  <name>
const (
	gsi1 = "GSI1"
	gsi2 = "GSI2"

	typeAccount   = "ACCOUNT"
	typeLedger    = "LEDGER"
	typeDebt      = "DEBT"
	typeContact   = "CONTACT"
	typeFormation = "FORMATION"
)

func entityPK(entityType, id string) string {
	return fmt.Sprintf("%s#%s", entityType, id)
}

func companySortKey(companyID, sortValue, id string) string {
	return fmt.Sprintf("%s#%s#%s", companyID, sortValue, id)
}

func companyPrefix(companyID string) string {
	return companyID + "#"
}

func debtLookupKey(debtID string) string {
	return "DEBT#" + debtID
}

func sourceAccountLookupKey(accountID string) string {
	return "SOURCE_ACCOUNT#" + accountID
}

func emailLookupKey(email string) string {
	return "EMAIL#" + email
}
