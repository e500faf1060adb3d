package service

// Prompt text sent to the hosted model. Kept apart from the call sites so it
// can be tuned without touching the fallback logic.

const (
	medicalSystemPrompt   = "You are a helpful medical AI assistant."
	sentimentSystemPrompt = "You are a sentiment analysis AI assistant."
	pharmacySystemPrompt  = "You are a pharmaceutical AI assistant. Always remind the patient to confirm with their doctor or pharmacist."

	sentimentPrompt = `Analyze the sentiment of this patient feedback and respond with JSON only, in the form
{"sentiment": "Positive|Negative|Neutral", "tone": "...", "topics": ["..."], "urgency": "Low|Medium|High", "actionRequired": true|false}

Rating: %d/5
Type: %s
Comments: %s`

	summaryPrompt = `Summarize the following consultation notes for the patient record. Use short sections:
Chief Complaint, Key Findings, Assessment, Plan, Follow-up.

Notes:
%s`

	healthReportPrompt = `Based on the following patient conversation summary, generate a comprehensive health report.

Patient Information:
- Name: %s
- Age: %s
- Blood Group: %s
- Medical History: %s
- Allergies: %s

Conversation Summary:
%s

Include these sections: Summary of Concerns, Possible Causes, Recommendations, Lifestyle Advice,
Follow-up Plan, When to Seek Immediate Care. Always state that this is not a medical diagnosis.`

	symptomPrompt = `A patient reports the following.
Symptoms: %s
Severity: %s
Duration: %s
Age: %s
Known allergies: %s

Give possible conditions, a recommended action, self-care advice and red-flag warnings.
Include a medical disclaimer.`

	safetyPrompt = `Perform a safety check for this prescription.

Patient: %s, age %s
Allergies: %s
Medical history: %s

Medicines:
%s
Cover: drug interactions, allergy conflicts, dosage safety, side effects, precautions,
and a safety score (0-100).`
)

const (
	summaryFallback = "AI summary is unavailable right now. The original notes were saved; please review them manually."

	healthReportFallback = "The AI health report could not be generated right now. " +
		"Your conversation summary has been saved. Please share it with your doctor at your next appointment."

	safetyFallback = "The automated safety check is unavailable right now. " +
		"Please confirm interactions, allergies and dosage with your doctor or pharmacist before taking these medicines."

	severeSymptomAdvice = "Seek Immediate Medical Attention: based on the severity of your symptoms, " +
		"consult a doctor immediately or visit an emergency room."

	persistentSymptomAdvice = "Consult a Doctor: your symptoms have persisted for over a week. " +
		"Schedule an appointment with a doctor for proper evaluation."

	generalSymptomAdvice = "General Recommendations: rest and stay hydrated, monitor your symptoms, " +
		"consider over-the-counter medication for symptom relief, and schedule a doctor consultation if symptoms worsen or persist."
)
