package templates

import (
	"strings"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// iso27701Definition is a starter ISO 27701 privacy-management questionnaire,
// installable via `audit-atlas seed`.
const iso27701Definition = `
name: ISO 27701:2019 - Privacy Information Management
code: ISO-27701
description: Privacy information management system assessment based on ISO 27701:2019
standard: ISO 27701
version: "2019"
sections:
  - name: Organizational Context
    code: SEC-4
    description: Context of the organization with respect to PII processing
    questions:
      - code: Q-4.1
        text: Has the organizational context regarding personal data processing been identified?
        type: yes_no
        max_score: 10
      - code: Q-4.2
        text: Have the interested parties relevant to the PIMS been identified?
        type: yes_no
        max_score: 10
      - code: Q-4.3
        text: Has the scope of the privacy management system been defined?
        type: yes_no
        max_score: 10
      - code: Q-4.4
        text: How mature is the implemented privacy information management system?
        type: scale
        max_score: 10
        weight: 2
  - name: Leadership and Governance
    code: SEC-5
    description: Management commitment, roles and responsibilities
    questions:
      - code: Q-5.1
        text: Has top management established a privacy policy?
        type: yes_no
        max_score: 10
        weight: 2
      - code: Q-5.2
        text: How are privacy roles and responsibilities assigned?
        type: multiple_choice
        choices:
          - Formally documented and communicated
          - Assigned but not documented
          - Not assigned
        max_score: 10
      - code: Q-5.3
        text: Rate the effectiveness of privacy governance oversight.
        type: scale
        max_score: 10
  - name: Risk and Impact Assessment
    code: SEC-6
    description: Privacy risk management and DPIA practices
    questions:
      - code: Q-6.1
        text: Are privacy impact assessments performed for new processing activities?
        type: yes_no
        max_score: 10
        weight: 2
      - code: Q-6.2
        text: How often are privacy risk assessments reviewed?
        type: multiple_choice
        choices:
          - At least annually and on significant change
          - Only on significant change
          - Never
        max_score: 10
      - code: Q-6.3
        text: Describe the criteria used to accept residual privacy risk.
        type: text
        max_score: 5
        required: false
`

// ISO27701Starter builds the bundled ISO 27701 starter template.
func ISO27701Starter() (*domain.Template, error) {
	return Parse(strings.NewReader(iso27701Definition))
}
